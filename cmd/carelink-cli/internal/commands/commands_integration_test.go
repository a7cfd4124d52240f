//go:build integration
// +build integration

package commands

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestConfig writes a sqlite configuration into a temp directory
func writeTestConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "cli.yaml")
	content := fmt.Sprintf(`port: "8080"
database:
  type: sqlite
  dsn: %s
auth:
  jwt_secret: test-jwt-secret-0123456789abcdef0123
  encryption_key: test-encryption-key
storage:
  provider: local
  local_dir: %s
`, filepath.Join(dir, "carelink.db"), filepath.Join(dir, "uploads"))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func newTestRoot(t *testing.T) *cobra.Command {
	t.Helper()

	root := &cobra.Command{Use: "carelink-cli", SilenceUsage: true, SilenceErrors: true}
	AddConfigFlag(root)
	require.NoError(t, InitAdminCommands(root))
	require.NoError(t, InitMaintenanceCommands(root))
	require.NoError(t, InitKeyCommands(root))
	return root
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newTestRoot(t)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestGenerateKey(t *testing.T) {
	out, err := execute(t, "generate-encryption-key", "--key-size", "32")
	require.NoError(t, err)

	key, err := base64.StdEncoding.DecodeString(string(bytes.TrimSpace([]byte(out))))
	require.NoError(t, err)
	assert.Len(t, key, 32)

	_, err = execute(t, "generate-encryption-key", "--key-size", "20")
	assert.Error(t, err)
}

func TestMigrateCreateUserAndMaintenance(t *testing.T) {
	configPath := writeTestConfig(t)

	_, err := execute(t, "migrate", "--config", configPath)
	require.NoError(t, err)

	out, err := execute(t, "create-admin", "--config", configPath,
		"--email", "root@example.com", "--password", "correct horse battery",
		"--first-name", "Root", "--last-name", "Admin")
	require.NoError(t, err)

	var created map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.Equal(t, "ADMIN", created["role"])
	assert.NotEmpty(t, created["id"])

	// Same email again is a conflict
	_, err = execute(t, "create-admin", "--config", configPath,
		"--email", "root@example.com", "--password", "correct horse battery",
		"--first-name", "Root", "--last-name", "Admin")
	assert.Error(t, err)

	out, err = execute(t, "purge-audit-logs", "--config", configPath, "--retention-days", "1")
	require.NoError(t, err)
	var purged map[string]int64
	require.NoError(t, json.Unmarshal([]byte(out), &purged))
	assert.Equal(t, int64(0), purged["removed"])

	out, err = execute(t, "compliance-sweep", "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, `"checked": 0`)

	_, err = execute(t, "unusual-access", "--config", configPath, "--lookback-days", "0")
	assert.Error(t, err)

	out, err = execute(t, "unusual-access", "--config", configPath)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}
