package hooks

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeHook(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	script := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(script), 0755))
}

func setupHooksDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SELLERTRAY_HOOKS_DIR", dir)
	t.Setenv("SELLERTRAY_HOOKS_ASYNC", "0")
	return dir
}

func TestRunWithoutHookDirIsNoop(t *testing.T) {
	setupHooksDir(t)
	require.NoError(t, Run(PointNotificationReceived))
}

func TestRunExecutesHookWithEnvironment(t *testing.T) {
	dir := setupHooksDir(t)
	outFile := filepath.Join(dir, "out.txt")
	writeHook(t, filepath.Join(dir, PointNotificationReceived), "10-record.sh",
		`printf '%s|%s|%s' "$HOOK_POINT" "$NOTIFICATION_ID" "$NOTIFICATION_TYPE" > `+outFile)

	err := Run(PointNotificationReceived, NotificationEnv("n1", "warn", "unread", "Low stock", "B07ABC", "ATVPDKIKX0DER")...)
	require.NoError(t, err)

	content, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Equal(t, "notification-received|n1|warn", string(content))
}

func TestRunExecutesHooksInNameOrder(t *testing.T) {
	dir := setupHooksDir(t)
	outFile := filepath.Join(dir, "order.txt")
	hookDir := filepath.Join(dir, PointMarkedRead)
	writeHook(t, hookDir, "20-second.sh", `printf 'b' >> `+outFile)
	writeHook(t, hookDir, "10-first.sh", `printf 'a' >> `+outFile)

	require.NoError(t, Run(PointMarkedRead))

	content, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Equal(t, "ab", string(content))
}

func TestRunSkipsNonExecutableFiles(t *testing.T) {
	dir := setupHooksDir(t)
	hookDir := filepath.Join(dir, PointConnectionLost)
	outFile := filepath.Join(dir, "out.txt")
	require.NoError(t, os.MkdirAll(hookDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(hookDir, "notes.txt"),
		[]byte("#!/bin/sh\nprintf 'x' > "+outFile+"\n"), 0644))

	require.NoError(t, Run(PointConnectionLost))
	_, err := os.Stat(outFile)
	assert.True(t, os.IsNotExist(err))
}

func TestFailureModeAbortReturnsError(t *testing.T) {
	dir := setupHooksDir(t)
	t.Setenv("SELLERTRAY_HOOKS_FAILURE_MODE", "abort")
	writeHook(t, filepath.Join(dir, PointNotificationReceived), "10-fail.sh", "exit 1")

	err := Run(PointNotificationReceived)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "10-fail.sh")
}

func TestFailureModeWarnContinues(t *testing.T) {
	dir := setupHooksDir(t)
	t.Setenv("SELLERTRAY_HOOKS_FAILURE_MODE", "warn")
	outFile := filepath.Join(dir, "out.txt")
	hookDir := filepath.Join(dir, PointNotificationReceived)
	writeHook(t, hookDir, "10-fail.sh", "exit 1")
	writeHook(t, hookDir, "20-record.sh", `printf 'ran' > `+outFile)

	require.NoError(t, Run(PointNotificationReceived))

	content, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Equal(t, "ran", string(content))
}

func TestAsyncHooksComplete(t *testing.T) {
	dir := setupHooksDir(t)
	t.Setenv("SELLERTRAY_HOOKS_ASYNC", "1")
	outFile := filepath.Join(dir, "out.txt")
	writeHook(t, filepath.Join(dir, PointConnectionRestored), "10-record.sh", `printf 'async' > `+outFile)

	require.NoError(t, Run(PointConnectionRestored))
	WaitForPendingHooks()
	ResetForTesting()

	content, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Equal(t, "async", string(content))
}

func TestNotificationEnv(t *testing.T) {
	env := NotificationEnv("n1", "error", "unread", "Buy Box lost", "B07ABC", "ATVPDKIKX0DER")
	assert.Contains(t, env, "NOTIFICATION_ID=n1")
	assert.Contains(t, env, "NOTIFICATION_TYPE=error")
	assert.Contains(t, env, "NOTIFICATION_TITLE=Buy Box lost")
	assert.Contains(t, env, "NOTIFICATION_MARKETPLACE=ATVPDKIKX0DER")
}
