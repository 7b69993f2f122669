package controllers

import (
	"context"
	"errors"
	"strings"

	"storefront/usecases"

	"github.com/go-playground/validator/v10"
)

type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseSuccess Phase = "success"
	PhaseError   Phase = "error"
)

// Messages shown by the login and register screens.
const (
	MsgInvalidCredentials = "Invalid email or password!"
	MsgFillAllFields      = "Please fill in all fields!"
	MsgInvalidEmail       = "Invalid email format!"
	MsgEmailTaken         = "This email is already registered!"
)

// FormState is the state of the login and register screens. Message is set
// only in PhaseError.
type FormState struct {
	Phase   Phase  `json:"phase"`
	Message string `json:"message,omitempty"`
}

func idle() FormState                 { return FormState{Phase: PhaseIdle} }
func loading() FormState              { return FormState{Phase: PhaseLoading} }
func success() FormState              { return FormState{Phase: PhaseSuccess} }
func failed(message string) FormState { return FormState{Phase: PhaseError, Message: message} }

func set(o *Observable[FormState], s FormState) FormState {
	return o.Update(func(FormState) FormState { return s })
}

type LoginController struct {
	users *usecases.UserUseCase
	state *Observable[FormState]
}

func NewLoginController(users *usecases.UserUseCase) *LoginController {
	return &LoginController{users: users, state: NewObservable(idle())}
}

func (c *LoginController) State() *Observable[FormState] { return c.state }

// Submit signs in. Once the screen reached success it ignores further submits.
func (c *LoginController) Submit(ctx context.Context, email, password string) FormState {
	if c.state.Value().Phase == PhaseSuccess {
		return c.state.Value()
	}
	set(c.state, loading())

	_, err := c.users.Login(ctx, email, password)
	switch {
	case errors.Is(err, usecases.ErrInvalidCredentials):
		return set(c.state, failed(MsgInvalidCredentials))
	case err != nil:
		return set(c.state, failed("Error: "+err.Error()))
	}
	return set(c.state, success())
}

// CheckAutoLogin reports whether a user is remembered on this device.
func (c *LoginController) CheckAutoLogin(ctx context.Context) (bool, error) {
	userID, err := c.users.CurrentUserID(ctx)
	return userID != "", err
}

type RegisterController struct {
	users    *usecases.UserUseCase
	validate *validator.Validate
	state    *Observable[FormState]
}

func NewRegisterController(users *usecases.UserUseCase) *RegisterController {
	return &RegisterController{users: users, validate: validator.New(), state: NewObservable(idle())}
}

func (c *RegisterController) State() *Observable[FormState] { return c.state }

// Submit validates the form, then creates the account and signs it in.
func (c *RegisterController) Submit(ctx context.Context, name, email, password string) FormState {
	if c.state.Value().Phase == PhaseSuccess {
		return c.state.Value()
	}
	set(c.state, loading())

	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return set(c.state, failed(MsgFillAllFields))
	}
	if err := c.validate.Var(strings.TrimSpace(email), "email"); err != nil {
		return set(c.state, failed(MsgInvalidEmail))
	}

	_, err := c.users.Register(ctx, name, email, password)
	switch {
	case errors.Is(err, usecases.ErrEmailTaken):
		return set(c.state, failed(MsgEmailTaken))
	case err != nil:
		return set(c.state, failed("Registration failed: "+err.Error()))
	}
	return set(c.state, success())
}
