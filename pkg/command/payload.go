package command

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// PayloadVersion is the wire version of Payload written by the CLI.
const PayloadVersion = 1

// PayloadEnv names the environment variable carrying an encoded Payload.
const PayloadEnv = "STENCIL_PAYLOAD"

// Payload is what the CLI hands a dispatched command: the positional
// arguments and the options record that trails them.
type Payload struct {
	Version     int            `json:"version"`
	HostVersion string         `json:"host_version,omitempty"`
	Command     string         `json:"command"`
	Args        []string       `json:"args"`
	Options     map[string]any `json:"options"`
}

// Encode serializes p for the child process.
func (p Payload) Encode() ([]byte, error) {
	if p.Args == nil {
		p.Args = []string{}
	}
	if p.Options == nil {
		p.Options = map[string]any{}
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}
	return data, nil
}

// ParsePayload decodes data and rejects payload versions it does not know.
func ParsePayload(data []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Payload{}, fmt.Errorf("decoding payload: %w", err)
	}
	if p.Version != PayloadVersion {
		return Payload{}, fmt.Errorf("unsupported payload version %d (want %d)", p.Version, PayloadVersion)
	}
	if p.Options == nil {
		p.Options = map[string]any{}
	}
	return p, nil
}

// DecodePayload reads the payload from PayloadEnv. When the variable is
// unset or empty the command was started by hand, and a payload is built
// from argv with the flags cmd declares.
func DecodePayload(cmd Command, argv []string) (Payload, error) {
	if raw := os.Getenv(PayloadEnv); raw != "" {
		return ParsePayload([]byte(raw))
	}
	name := filepath.Base(os.Args[0])
	args, options, err := ParseArgs(name, argv, cmd)
	if err != nil {
		return Payload{}, fmt.Errorf("parsing arguments: %w", err)
	}
	return Payload{Version: PayloadVersion, Command: name, Args: args, Options: options}, nil
}
