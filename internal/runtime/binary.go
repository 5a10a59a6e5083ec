package runtime

import (
	"context"
	"os/exec"

	log "github.com/sirupsen/logrus"
	"github.com/stencil-labs/stencil/pkg/command"
)

// PayloadEnv carries the JSON payload to the child process.
const PayloadEnv = command.PayloadEnv

// BinaryRuntime executes the entry file directly. The positional args are
// passed on the command line and the full payload through PayloadEnv.
type BinaryRuntime struct {
	Streams
}

// Run executes inv.Entry and waits for it to exit.
func (b *BinaryRuntime) Run(ctx context.Context, inv Invocation) (*Output, error) {
	cmd := exec.CommandContext(ctx, inv.Entry, inv.Args...)
	cmd.Dir = inv.Dir
	cmd.Env = buildEnv(inv.Payload)
	b.attach(cmd)

	log.WithField("entry", inv.Entry).Debug("starting child process")
	return wait(cmd)
}
