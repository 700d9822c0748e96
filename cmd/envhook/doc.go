// Envhook is a pre-commit hook that keeps secrets files out of git.
//
// On every run it regenerates a value-stripped template of the secrets file
// (".env" becomes ".env.example", keys kept, values dropped, ###-marked
// comments preserved) and makes sure the repository ignore file lists the
// secrets file.
//
// Usage:
//
//	envhook                           # check .env at the repository root
//	envhook --env-file config/.env    # use another secrets file
//	envhook --skip-gitignore          # only regenerate the template
//	envhook hook install              # install as .git/hooks/pre-commit
//	envhook config show               # print the effective configuration
//
// Exit status is 0 when every attempted step succeeded, 1 when one failed
// and 2 on usage or configuration errors.
package main
