package canister

import "fmt"

// Stage identifies the lifecycle step a deployment failed at.
type Stage string

const (
	StageCreate  Stage = "create"
	StageBuild   Stage = "build"
	StageInstall Stage = "install"
	StageResolve Stage = "resolve"
)

// DeployError indicates a deployment failed, carrying the stage that
// failed. Rollback has already run by the time it is returned.
type DeployError struct {
	Name  string
	Stage Stage
	Err   error
}

func (e *DeployError) Error() string {
	return fmt.Sprintf("failed to deploy canister '%s' at stage %s: %v", e.Name, e.Stage, e.Err)
}

func (e *DeployError) Unwrap() error { return e.Err }
