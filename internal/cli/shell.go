// Package cli implements the interactive menu shell
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pokemedquest/internal/art"
	"pokemedquest/internal/models"
	"pokemedquest/internal/service"
	"pokemedquest/internal/validation"
)

// Session is the logged-in state of one shell user
type Session struct {
	ID        string
	User      *models.User
	StartedAt time.Time
}

// NewSession opens a session for an authenticated user
func NewSession(user *models.User) *Session {
	return &Session{
		ID:        uuid.NewString(),
		User:      user,
		StartedAt: time.Now().UTC(),
	}
}

// Shell reads menu choices from in and writes the transcript to out
type Shell struct {
	auth     *service.AuthService
	avatars  *service.AvatarService
	progress *service.ProgressService
	renderer *art.Renderer
	logger   *zap.Logger

	in  *bufio.Scanner
	out io.Writer
}

// NewShell creates a shell over the given services
func NewShell(
	auth *service.AuthService,
	avatars *service.AvatarService,
	progress *service.ProgressService,
	renderer *art.Renderer,
	logger *zap.Logger,
	in io.Reader,
	out io.Writer,
) *Shell {
	return &Shell{
		auth:     auth,
		avatars:  avatars,
		progress: progress,
		renderer: renderer,
		logger:   logger,
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

// Run drives the menus until the user exits or input ends
func (s *Shell) Run() error {
	s.println("=== Welcome to PokeMed Quest! ===")

	var session *Session
	for {
		var err error
		switch {
		case session == nil:
			session, err = s.mainMenu()
			if errors.Is(err, errExit) {
				s.println("Goodbye!")
				return nil
			}
		case session.User.IsAdmin():
			session, err = s.adminMenu(session)
		default:
			session, err = s.childMenu(session)
		}

		if errors.Is(err, io.EOF) {
			s.println("")
			s.println("Input closed. Goodbye!")
			return nil
		}
		if err != nil {
			return err
		}
		s.println("")
	}
}

var errExit = errors.New("exit requested")

func (s *Shell) mainMenu() (*Session, error) {
	s.println("--- Main Menu ---")
	s.println("1. Login")
	s.println("2. Register")
	s.println("0. Exit")

	choice, err := s.prompt("Enter choice: ")
	if err != nil {
		return nil, err
	}

	switch choice {
	case "1":
		return s.login()
	case "2":
		return nil, s.register()
	case "0":
		return nil, errExit
	default:
		s.println("Invalid choice. Please try again.")
		return nil, nil
	}
}

func (s *Shell) login() (*Session, error) {
	s.println("--- Login ---")
	username, err := s.prompt("Username: ")
	if err != nil {
		return nil, err
	}
	password, err := s.prompt("Password: ")
	if err != nil {
		return nil, err
	}

	user, err := s.auth.Login(username, password)
	if err != nil {
		s.reportError(err)
		return nil, nil
	}

	session := NewSession(user)
	s.logger.Info("session started",
		zap.String("session_id", session.ID),
		zap.Int64("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)
	s.printf("Login successful! Welcome, %s!\n", user.Username)
	s.printf("--- Logged in as: %s (%s) ---\n", user.Username, user.Role)
	return session, nil
}

func (s *Shell) register() error {
	s.println("--- Register New User ---")
	username, err := s.prompt("Username: ")
	if err != nil {
		return err
	}
	password, err := s.prompt("Password: ")
	if err != nil {
		return err
	}
	role, err := s.prompt("Role (child/admin): ")
	if err != nil {
		return err
	}
	if _, ok := models.ParseRole(role); !ok {
		s.println("Invalid role. Defaulting to 'child'.")
		role = string(models.RoleChild)
	}

	user, err := s.auth.Register(username, password, role)
	if err != nil {
		s.reportError(err)
		return nil
	}
	s.printf("Registration successful for user: %s\n", user.Username)

	if user.Role != models.RoleChild {
		return nil
	}
	for {
		name, err := s.prompt("Name your avatar (warrior, mage, archer or your own): ")
		if err != nil {
			return err
		}
		if _, err := s.avatars.CreateDefaultAvatar(user, name); err != nil {
			s.reportError(err)
			if errors.Is(err, service.ErrAvatarExists) {
				return nil
			}
			continue
		}
		s.println("Default avatar created!")
		return nil
	}
}

func (s *Shell) logout(session *Session) {
	s.logger.Info("session ended",
		zap.String("session_id", session.ID),
		zap.Duration("duration", time.Since(session.StartedAt)),
	)
	s.printf("Logging out %s...\n", session.User.Username)
}

// prompt prints message and returns the next trimmed input line
func (s *Shell) prompt(message string) (string, error) {
	s.printf("%s", message)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

// promptInt keeps asking until the input parses as an integer
func (s *Shell) promptInt(message string) (int, error) {
	for {
		line, err := s.prompt(message)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil {
			return n, nil
		}
		s.println("Invalid input. Please enter a number.")
	}
}

// reportError prints a user-facing message for err. Store failures are logged
// with full detail and shown generically.
func (s *Shell) reportError(err error) {
	var vErr validation.ValidationError
	switch {
	case errors.As(err, &vErr):
		s.printf("Invalid input: %s\n", vErr.Message)
	case errors.Is(err, service.ErrInvalidCredentials):
		s.println("Login failed. Invalid username or password.")
	case errors.Is(err, service.ErrUsernameTaken):
		s.println("Registration failed: that username is already taken.")
	case errors.Is(err, service.ErrAvatarExists):
		s.println("You already have an avatar.")
	case errors.Is(err, service.ErrAvatarNotFound):
		s.println("You need an avatar first!")
	case errors.Is(err, service.ErrUserNotFound):
		s.println("No user with that username.")
	case errors.Is(err, service.ErrForbidden):
		s.println("Only admins can do that.")
	case errors.Is(err, service.ErrCannotDeleteSelf):
		s.println("You cannot delete your own account.")
	default:
		s.logger.Error("operation failed", zap.Error(err))
		s.println("Something went wrong. Please try again.")
	}
}

func (s *Shell) println(line string) {
	fmt.Fprintln(s.out, line)
}

func (s *Shell) printf(format string, args ...interface{}) {
	fmt.Fprintf(s.out, format, args...)
}
