package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"skycab/internal/ai"
)

func main() {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	provider, err := ai.NewGeminiProvider(ctx, apiKey, os.Getenv("SKYCAB_GEMINI_MODEL"))
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer provider.Close()

	userMessage := "I have paneer, spinach and rice. What can I cook tonight?"
	if len(os.Args) > 1 {
		userMessage = strings.Join(os.Args[1:], " ")
	}
	fmt.Printf("User: %s\n", userMessage)

	reply, err := provider.Reply(ctx, userMessage)
	if err != nil {
		log.Fatalf("Error generating reply: %v", err)
	}
	fmt.Printf("AI Reply: %s\n", reply)
}
