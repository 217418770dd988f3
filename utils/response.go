package utils

import (
	"log"
	"os"
	"path/filepath"

	"github.com/bwmarrin/discordgo"
)

// SendEphemeralResponse sends an ephemeral message to the caller only.
func SendEphemeralResponse(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Error sending ephemeral response: %v", err)
	}
}

// SendPublicResponse sends a plain public message.
func SendPublicResponse(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
		},
	})
	if err != nil {
		log.Printf("Error sending public response: %v", err)
	}
}

// SendImageResponse sends a public message with a local image attached.
// Falls back to text only when the file cannot be opened.
func SendImageResponse(s *discordgo.Session, i *discordgo.InteractionCreate, message, imagePath string) {
	if imagePath == "" {
		SendPublicResponse(s, i, message)
		return
	}
	file, err := os.Open(imagePath)
	if err != nil {
		log.Printf("Error opening image %s: %v", imagePath, err)
		SendPublicResponse(s, i, message)
		return
	}
	defer file.Close()

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Files: []*discordgo.File{{
				Name:   filepath.Base(imagePath),
				Reader: file,
			}},
		},
	})
	if err != nil {
		log.Printf("Error sending image response: %v", err)
	}
}
