package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// promptString asks for a value interactively when the flag was empty
func promptString(title, value string, required bool) (string, error) {
	if value != "" {
		return value, nil
	}

	input := huh.NewInput().
		Title(title).
		Value(&value)

	form := huh.NewForm(huh.NewGroup(input))
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}

	if required && strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("%s is required", strings.ToLower(title))
	}
	return value, nil
}

// promptPassword asks for a secret without echoing it
func promptPassword(title, value string) (string, error) {
	if value != "" {
		return value, nil
	}

	input := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&value)

	form := huh.NewForm(huh.NewGroup(input))
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}

	if value == "" {
		return "", fmt.Errorf("%s is required", strings.ToLower(title))
	}
	return value, nil
}

// promptConfirm asks a yes/no question
func promptConfirm(message string, defaultValue bool) (bool, error) {
	confirmed := defaultValue

	confirm := huh.NewConfirm().
		Title(message).
		Value(&confirmed)

	form := huh.NewForm(huh.NewGroup(confirm))
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("prompt failed: %w", err)
	}
	return confirmed, nil
}
