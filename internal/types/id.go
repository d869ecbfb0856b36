// README: Opaque string identifier shared by bookings, chats and users.
package types

type ID string
