// Package hooks provides a hook subsystem for extensibility. Users drop
// executable scripts into per-event directories and the tray runs them with
// notification details in the environment.
package hooks

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sellerdash/sellertray/internal/colors"
	"github.com/sellerdash/sellertray/internal/config"
)

// Hook points fired by the tray.
const (
	// PointNotificationReceived fires when a live notification arrives.
	PointNotificationReceived = "notification-received"
	// PointMarkedRead fires after a notification is marked read.
	PointMarkedRead = "marked-read"
	// PointConnectionLost fires when the event channel drops.
	PointConnectionLost = "connection-lost"
	// PointConnectionRestored fires when the event channel comes back.
	PointConnectionRestored = "connection-restored"
)

var (
	// async tracking
	asyncPending      sync.WaitGroup
	asyncPendingMu    sync.Mutex
	asyncPendingCount int
)

var (
	manager *hookManager
	once    sync.Once
)

type hookManager struct {
	mu          sync.Mutex
	initialized bool
}

func getManager() *hookManager {
	once.Do(func() {
		manager = &hookManager{}
	})
	return manager
}

// Init initializes the hooks subsystem.
func Init() error {
	config.Load()
	m := getManager()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.initialized {
		return nil
	}
	dir := getHooksDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		colors.Error(fmt.Sprintf("failed to create hooks directory %s: %v", dir, err))
		return fmt.Errorf("failed to create hooks directory %s: %w", dir, err)
	}
	m.initialized = true
	return nil
}

// getHooksDir returns the hooks directory path.
func getHooksDir() string {
	config.Load()
	// Environment variable has highest precedence
	if dir := os.Getenv("SELLERTRAY_HOOKS_DIR"); dir != "" {
		return dir
	}
	if dir := config.Get("hooks_dir", ""); dir != "" {
		colors.Debug(fmt.Sprintf("hooks_dir from config: %s", dir))
		return dir
	}
	// Default: $XDG_CONFIG_HOME/sellertray/hooks
	if configDir := os.Getenv("XDG_CONFIG_HOME"); configDir != "" {
		return filepath.Join(configDir, "sellertray", "hooks")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "sellertray", "hooks")
}

// getFailureMode returns the failure mode (abort, warn, ignore).
func getFailureMode() string {
	if mode := os.Getenv("SELLERTRAY_HOOKS_FAILURE_MODE"); mode != "" {
		return mode
	}
	if mode := config.Get("hooks_failure_mode", ""); mode != "" {
		return mode
	}
	return "warn"
}

// getAsyncEnabled returns true if async hooks are enabled.
func getAsyncEnabled() bool {
	if async := os.Getenv("SELLERTRAY_HOOKS_ASYNC"); async != "" {
		return async == "1" || async == "true" || async == "yes" || async == "on"
	}
	return config.GetBool("hooks_async", false)
}

// getAsyncTimeout returns the timeout for async hooks.
func getAsyncTimeout() time.Duration {
	if timeoutStr := os.Getenv("SELLERTRAY_HOOKS_ASYNC_TIMEOUT"); timeoutStr != "" {
		if seconds, err := time.ParseDuration(timeoutStr + "s"); err == nil {
			return seconds
		}
	}
	return 30 * time.Second
}

// getMaxAsyncHooks returns maximum number of concurrent async hooks.
func getMaxAsyncHooks() int {
	if maxStr := os.Getenv("SELLERTRAY_MAX_HOOKS"); maxStr != "" {
		if max, err := strconv.Atoi(maxStr); err == nil && max > 0 {
			return max
		}
	}
	return 10
}

// runSyncHook executes a hook script synchronously.
func runSyncHook(scriptPath, scriptName string, envMap map[string]string, failureMode string) error {
	start := time.Now()
	cmd := exec.Command(scriptPath)
	cmd.Env = os.Environ()
	for k, v := range envMap {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}
	output, err := cmd.CombinedOutput()
	duration := time.Since(start)
	// Hook output goes to stderr so it lands in logs, not command output
	if len(output) > 0 {
		os.Stderr.Write(output)
	}
	if err != nil {
		switch failureMode {
		case "abort":
			return fmt.Errorf("hook %s failed: %v, output: %s", scriptName, err, output)
		case "warn":
			fmt.Fprintf(os.Stderr, "warning: hook %s failed: %v, output: %s\n", scriptName, err, output)
		case "ignore":
			// do nothing
		}
	} else {
		fmt.Fprintf(os.Stderr, "  Hook completed in %.2fs\n", duration.Seconds())
	}
	return nil
}

// runAsyncHook executes a hook script asynchronously with timeout.
func runAsyncHook(scriptPath, scriptName string, envMap map[string]string, failureMode string) {
	timeout := getAsyncTimeout()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	cmd := exec.CommandContext(ctx, scriptPath)
	cmd.Env = os.Environ()
	for k, v := range envMap {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		cancel()
		if failureMode != "ignore" {
			fmt.Fprintf(os.Stderr, "warning: async hook %s failed to start: %v\n", scriptName, err)
		}
		asyncPendingMu.Lock()
		asyncPendingCount--
		asyncPendingMu.Unlock()
		asyncPending.Done()
		return
	}
	startTime := time.Now()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				fmt.Fprintf(os.Stderr, "error: async hook %s panicked: %v\n", scriptName, r)
			}
			asyncPendingMu.Lock()
			asyncPendingCount--
			asyncPendingMu.Unlock()
			asyncPending.Done()
			cancel()
		}()

		err := cmd.Wait()
		duration := time.Since(startTime)

		if ctx.Err() == context.DeadlineExceeded {
			fmt.Fprintf(os.Stderr, "warning: async hook %s timed out after %.2fs\n", scriptName, duration.Seconds())
		}

		if err != nil && failureMode != "ignore" {
			fmt.Fprintf(os.Stderr, "warning: async hook %s failed: %v (duration: %.2fs)\n", scriptName, err, duration.Seconds())
		} else if err == nil {
			fmt.Fprintf(os.Stderr, "  async hook %s completed in %.2fs\n", scriptName, duration.Seconds())
		}
	}()
}

// Run executes hooks for a hook point with environment variables given as
// KEY=VALUE strings.
func Run(hookPoint string, envVars ...string) error {
	hookDir := filepath.Join(getHooksDir(), hookPoint)
	files, err := os.ReadDir(hookDir)
	if err != nil {
		// Directory doesn't exist -> no hooks
		return nil
	}
	envMap := make(map[string]string)
	envMap["HOOK_POINT"] = hookPoint
	envMap["SELLERTRAY_HOOKS_FAILURE_MODE"] = getFailureMode()
	envMap["HOOK_TIMESTAMP"] = time.Now().Format(time.RFC3339)
	// Help hooks find the sellertray binary
	if exe, err := os.Executable(); err == nil {
		envMap["SELLERTRAY_BINARY"] = exe
	}
	for _, v := range envVars {
		parts := strings.SplitN(v, "=", 2)
		if len(parts) == 2 {
			envMap[parts[0]] = parts[1]
		}
	}

	// Collect executable hook scripts
	type scriptInfo struct {
		path string
		name string
	}
	scripts := []scriptInfo{}
	for _, f := range files {
		if f.IsDir() {
			continue
		}

		scriptPath := filepath.Join(hookDir, f.Name())
		info, err := os.Stat(scriptPath)
		if err != nil || info.Mode()&0111 == 0 {
			// Not executable
			continue
		}
		scripts = append(scripts, scriptInfo{path: scriptPath, name: f.Name()})
	}
	// Sort by name (ascending)
	sort.Slice(scripts, func(i, j int) bool {
		return scripts[i].name < scripts[j].name
	})

	if len(scripts) == 0 {
		return nil
	}

	fmt.Fprintf(os.Stderr, "Running %s hooks (%d script(s))\n", hookPoint, len(scripts))

	failureMode := getFailureMode()
	asyncEnabled := getAsyncEnabled()
	maxAsync := getMaxAsyncHooks()

	for _, script := range scripts {
		fmt.Fprintf(os.Stderr, "  Executing hook: %s\n", script.name)
		if asyncEnabled {
			asyncPendingMu.Lock()
			if asyncPendingCount >= maxAsync {
				asyncPendingMu.Unlock()
				fmt.Fprintf(os.Stderr, "warning: Too many async hooks pending (max: %d), skipping %s\n", maxAsync, script.name)
				continue
			}
			asyncPendingCount++
			asyncPending.Add(1)
			asyncPendingMu.Unlock()
			fmt.Fprintf(os.Stderr, "  Starting hook asynchronously: %s\n", script.name)
			go runAsyncHook(script.path, script.name, envMap, failureMode)
		} else {
			if err := runSyncHook(script.path, script.name, envMap, failureMode); err != nil {
				if failureMode == "abort" {
					return err
				}

				// warn or ignore: continue
			}
		}
	}
	return nil
}

// NotificationEnv builds the hook environment for a notification event.
func NotificationEnv(id, notifType, status, title, asin, marketplaceID string) []string {
	return []string{
		"NOTIFICATION_ID=" + id,
		"NOTIFICATION_TYPE=" + notifType,
		"NOTIFICATION_STATUS=" + status,
		"NOTIFICATION_TITLE=" + title,
		"NOTIFICATION_ASIN=" + asin,
		"NOTIFICATION_MARKETPLACE=" + marketplaceID,
	}
}

// ResetForTesting resets internal state for testing.
// Precondition: All async hooks must have completed before calling this.
func ResetForTesting() {
	asyncPendingMu.Lock()
	defer asyncPendingMu.Unlock()
	if asyncPendingCount > 0 {
		panic(fmt.Sprintf("ResetForTesting called with %d pending hooks. Call WaitForPendingHooks() first.", asyncPendingCount))
	}
	asyncPendingCount = 0
	asyncPending = sync.WaitGroup{}
}

// WaitForPendingHooks waits for all pending async hooks to complete.
func WaitForPendingHooks() {
	asyncPending.Wait()
}

// Shutdown gracefully shuts down the hooks subsystem.
func Shutdown() {
	WaitForPendingHooks()
}
