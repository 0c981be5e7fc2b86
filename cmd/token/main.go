// Command token mints an access token for operators and local testing.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/cmlabs-hris/facility-attendance-go/internal/config"
	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/facility-attendance-go/internal/pkg/jwt"
	flag "github.com/spf13/pflag"
)

func optional(v string) *string {
	if v = strings.TrimSpace(v); v == "" {
		return nil
	}
	return &v
}

func main() {
	userID := flag.String("user-id", "", "subject user id")
	name := flag.String("name", "", "display name recorded as markedBy")
	role := flag.String("role", "", "role claim, e.g. siteManager")
	employeeID := flag.String("employee-id", "", "employee id of the caller")
	assignedStore := flag.String("assigned-store", "", "assigned store code")
	stores := flag.StringSlice("stores", nil, "store codes held by a client")
	flag.Parse()

	if _, known := user.RolePermissions[user.Role(*role)]; !known {
		fmt.Fprintf(os.Stderr, "unknown role %q\n", *role)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	svc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	token, expiresAt, err := svc.GenerateAccessToken(user.Identity{
		UserID:        *userID,
		Name:          *name,
		Role:          user.Role(*role),
		EmployeeID:    optional(*employeeID),
		AssignedStore: optional(*assignedStore),
		Stores:        *stores,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error generating token:", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires at %d\n", expiresAt)
}
