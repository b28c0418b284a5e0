package utils

import (
	"elearn/config"
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-resty/resty/v2"
)

const tutorSystemPrompt = "You are a helpful tutor on an e-learning platform. " +
	"Answer questions about course material clearly and concisely."

// CompleteChat forwards a learner's message to the configured text-completion
// API and returns the assistant's reply. The upstream model is opaque; only
// the completion text is consumed.
func CompleteChat(message string) (string, error) {
	if config.AppConfig.ChatApiKey == "" {
		return "", fmt.Errorf("chat API key is not configured")
	}

	client := resty.New()
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.ChatApiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"model": config.AppConfig.ChatModel,
			"messages": []map[string]string{
				{"role": "system", "content": tutorSystemPrompt},
				{"role": "user", "content": message},
			},
		}).
		Post(config.AppConfig.ChatApiUrl)
	if err != nil {
		log.Printf("Error calling chat API: %v", err)
		return "", err
	}
	if resp.StatusCode() != 200 {
		log.Printf("Chat API failed: %s", resp.String())
		return "", fmt.Errorf("chat API returned status %d", resp.StatusCode())
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(resp.Body(), &completion); err != nil {
		log.Printf("Failed to parse chat API response: %v", err)
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("chat API returned no choices")
	}

	return completion.Choices[0].Message.Content, nil
}
