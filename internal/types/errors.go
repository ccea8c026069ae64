package types

import "fmt"

// DecodeError is returned when the CPU fetches an opcode that
// has no defined behaviour. The machine cannot continue past it.
type DecodeError struct {
	Opcode   uint8
	Prefixed bool   // the opcode followed a 0xCB prefix
	PC       uint16 // address the opcode was fetched from
}

func (e *DecodeError) Error() string {
	if e.Prefixed {
		return fmt.Sprintf("undefined opcode 0xCB 0x%02X at 0x%04X", e.Opcode, e.PC)
	}
	return fmt.Sprintf("undefined opcode 0x%02X at 0x%04X", e.Opcode, e.PC)
}

// ConfigError is returned when a register is written with a value
// the hardware model has no interpretation for, such as an OAM DMA
// source page outside of 0x80 - 0xDF.
type ConfigError struct {
	Address uint16
	Value   uint8
	Reason  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid value 0x%02X for 0x%04X: %s", e.Value, e.Address, e.Reason)
}

// AddressError is returned when a component is asked to service
// an address outside of the range it is mapped to.
type AddressError struct {
	Component string
	Address   uint16
	Write     bool
}

func (e *AddressError) Error() string {
	op := "read"
	if e.Write {
		op = "write"
	}
	return fmt.Sprintf("%s: %s of unmapped address 0x%04X", e.Component, op, e.Address)
}
