// Package proctl is the process-control collaborator the presentation
// layer delegates to: terminate or foreground a process by id. This
// sits outside the sampling core; the core only supplies the ids.
package proctl

import (
	"os"
	"syscall"

	"codeberg.org/seliv/sysvitals/internal/errors"
)

var errFactory = errors.New()

// Controller terminates or activates processes by id. Whether a process
// can be foregrounded is platform policy; CanActivate lets callers gray
// out the action instead of failing it.
type Controller interface {
	Terminate(pid int) error
	CanActivate(pid int) bool
	Activate(pid int) error
}

// osController is the default implementation backed by OS signals.
// Activation needs a window server; headless platforms report it
// unsupported.
type osController struct{}

// New returns the default controller.
func New() Controller {
	return osController{}
}

func (osController) Terminate(pid int) error {
	process, err := os.FindProcess(pid)
	if err != nil {
		return errFactory.Wrap(errors.ErrInvalidArgument, err)
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		return errFactory.Wrap(errors.ErrInternal, err)
	}

	return nil
}

func (osController) CanActivate(int) bool {
	return false
}

func (osController) Activate(int) error {
	return errFactory.New(errors.ErrUnavailable)
}
