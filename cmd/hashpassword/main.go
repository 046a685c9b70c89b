// Command hashpassword prints the admin password digest and the SQL that
// installs it.
package main

import (
	"fmt"
	"os"

	"github.com/example/luxa-shop/internal/domain/admin"
)

const defaultPassword = "1936"

func main() {
	password := defaultPassword
	if len(os.Args) > 1 {
		password = os.Args[1]
	}
	if len([]rune(password)) < admin.MinPasswordLength {
		fmt.Fprintf(os.Stderr, "password must be at least %d characters\n", admin.MinPasswordLength)
		os.Exit(1)
	}

	digest := admin.HashPassword(password)
	fmt.Println(digest)
	fmt.Printf("UPDATE admin_settings SET admin_password_hash = '%s' WHERE id = 1;\n", digest)
}
