package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"daybook/internal/keyring"
)

type PinSetCmd struct{}

func (cmd *PinSetCmd) Run(ctx *Context) error {
	var pin, confirm string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Access PIN").
				EchoMode(huh.EchoModePassword).
				Value(&pin),
			huh.NewInput().
				Title("Confirm PIN").
				EchoMode(huh.EchoModePassword).
				Value(&confirm),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}
	if pin != confirm {
		return errors.New("PINs do not match")
	}

	if err := keyring.SetPin(pin); err != nil {
		return err
	}
	fmt.Println("access PIN stored in OS keyring")
	return nil
}

type PinClearCmd struct{}

func (cmd *PinClearCmd) Run(ctx *Context) error {
	if err := keyring.DeletePin(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Println("no PIN was stored")
			return nil
		}
		return err
	}
	fmt.Println("access PIN removed from OS keyring")
	return nil
}
