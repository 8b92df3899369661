package errs

import (
	"errors"
	"net/http"
)

// Voting & Project Errors
var (
	ErrVotingClosed  = errors.New("voting is currently closed")
	ErrAlreadyVoted  = errors.New("you can only vote for one project")
	ErrProjectExists = errors.New("a project with this GitHub URL already exists")
)

func NewVotingClosedError() *ApiErr {
	return newKind(http.StatusForbidden, ErrVotingClosed, "Voting is currently closed")
}

func NewAlreadyVotedError(cause error) *ApiErr {
	return newKind(http.StatusBadRequest, ErrAlreadyVoted, "You can only vote for one project").WithCause(cause)
}

func NewProjectExistsError(cause error) *ApiErr {
	return newKind(http.StatusConflict, ErrProjectExists, "A project with this GitHub URL already exists").WithCause(cause)
}

func IsVotingClosedError(err error) bool {
	return errors.Is(err, ErrVotingClosed)
}

func IsAlreadyVotedError(err error) bool {
	return errors.Is(err, ErrAlreadyVoted)
}

func IsProjectExistsError(err error) bool {
	return errors.Is(err, ErrProjectExists)
}
