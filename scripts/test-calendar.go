package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pfrederiksen/sportify/internal/calendar"
	"github.com/pfrederiksen/sportify/internal/clock"
	"github.com/pfrederiksen/sportify/internal/event"
)

func main() {
	// Sample events, times already converted
	events := []*event.Event{
		event.NewMatch("22:30", "Premier League", "soccer", "Arsenal", "Chelsea", []string{"Sky Sports Main Event", "NBC"}),
		event.NewSingle("23:30", "WWE Raw", "wwe", "WWE Raw", []string{"Netflix"}),
	}

	icsContent := calendar.GenerateICS(events, time.Now(), clock.DefaultOffset, "Sportify")

	filename := "test-sportify.ics"
	if err := os.WriteFile(filename, []byte(icsContent), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Generated calendar file: %s\n\n", filename)
	fmt.Println("Test it by:")
	fmt.Println("1. Open the .ics file with your calendar app (double-click)")
	fmt.Println("2. Or import it into Google Calendar, Apple Calendar, or Outlook")
	fmt.Println("\nFile contents preview:")
	fmt.Println("---")
	fmt.Println(icsContent)
}
