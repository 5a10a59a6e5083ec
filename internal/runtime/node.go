package runtime

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"
	log "github.com/sirupsen/logrus"
)

// MinNodeVersion is the oldest Node.js release commands are run on.
const MinNodeVersion = "12.0.0"

// NodeRuntime runs CommonJS entry points. The entry module must export a
// function; it is called with the positional args followed by the options
// object.
type NodeRuntime struct {
	Streams
	// Binary overrides the node executable. Defaults to "node" on PATH.
	Binary string
	// MinVersion overrides MinNodeVersion.
	MinVersion string
}

// Run checks the installed Node.js version and then evaluates
// require(<entry>).apply(null, [...args, options]) with `node -e`.
func (n *NodeRuntime) Run(ctx context.Context, inv Invocation) (*Output, error) {
	nodeBin, err := n.lookup()
	if err != nil {
		return nil, err
	}
	if err := n.checkVersion(ctx, nodeBin); err != nil {
		return nil, err
	}

	program, err := NodeProgram(inv.Entry, inv.Args, inv.Options)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, nodeBin, "-e", program)
	cmd.Dir = inv.Dir
	cmd.Env = buildEnv(inv.Payload)
	n.attach(cmd)

	log.WithFields(log.Fields{"entry": inv.Entry, "node": nodeBin}).Debug("starting node child process")
	return wait(cmd)
}

// NodeProgram renders the program passed to `node -e`. Both the entry path
// and the argument list are JSON encoded, so they are valid JavaScript
// literals whatever they contain.
func NodeProgram(entry string, args []string, options map[string]any) (string, error) {
	if options == nil {
		options = map[string]any{}
	}
	callArgs := make([]any, 0, len(args)+1)
	for _, a := range args {
		callArgs = append(callArgs, a)
	}
	callArgs = append(callArgs, options)

	entryJSON, err := json.Marshal(entry)
	if err != nil {
		return "", fmt.Errorf("encoding entry path: %w", err)
	}
	argsJSON, err := json.Marshal(callArgs)
	if err != nil {
		return "", fmt.Errorf("encoding command arguments: %w", err)
	}
	return fmt.Sprintf("require(%s).apply(null, %s)", entryJSON, argsJSON), nil
}

func (n *NodeRuntime) lookup() (string, error) {
	bin := n.Binary
	if bin == "" {
		bin = "node"
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return "", &EnvironmentError{Runtime: "node", Err: err}
	}
	return path, nil
}

func (n *NodeRuntime) checkVersion(ctx context.Context, nodeBin string) error {
	minVersion := n.MinVersion
	if minVersion == "" {
		minVersion = MinNodeVersion
	}
	constraint, err := semver.NewConstraint(">= " + minVersion)
	if err != nil {
		return fmt.Errorf("invalid minimum node version %q: %w", minVersion, err)
	}

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, nodeBin, "--version")
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return &EnvironmentError{Runtime: "node", Required: minVersion, Err: fmt.Errorf("node --version: %w", err)}
	}

	found := strings.TrimSpace(out.String())
	v, err := semver.NewVersion(found)
	if err != nil {
		return &EnvironmentError{Runtime: "node", Required: minVersion, Found: found, Err: fmt.Errorf("parsing node version: %w", err)}
	}
	if !constraint.Check(v) {
		return &EnvironmentError{Runtime: "node", Required: minVersion, Found: found}
	}
	return nil
}
