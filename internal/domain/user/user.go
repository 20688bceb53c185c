// Package user defines the minimal user entity the workflows need: an
// identity and its single role. Authentication and profile management live
// outside this service.
package user

import (
	"fmt"
	"strings"
	"time"

	"github.com/jalonhq/jalon/internal/domain"
	"github.com/jalonhq/jalon/internal/domain/rbac"
)

const msgRequired = "is required"

// User represents an account known to the project-management backend.
type User struct {
	ID        string
	Email     string
	Name      string
	Role      rbac.Role
	CreatedAt time.Time
}

// Validate checks business rules for the User entity.
func (u *User) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(u.ID) == "" {
		fields["id"] = msgRequired
	}
	if strings.TrimSpace(u.Email) == "" {
		fields["email"] = msgRequired
	}
	if !u.Role.IsValid() {
		fields["role"] = fmt.Sprintf("invalid: %q", u.Role)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
