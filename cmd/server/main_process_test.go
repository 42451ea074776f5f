package main

import (
	"os"
	"os/exec"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

// runHelperProcess re-executes the named test with env so main() can log.Fatal
// without killing the test binary.
func runHelperProcess(t *testing.T, testName string, env ...string) error {
	t.Helper()
	cmd := exec.Command(os.Args[0], "-test.run="+testName)
	cmd.Env = append(append(os.Environ(), "GO_WANT_HELPER_PROCESS="+testName), env...)
	return cmd.Run()
}

func isHelperProcess(testName string) bool {
	return os.Getenv("GO_WANT_HELPER_PROCESS") == testName
}

func unreachableDBEnv() []string {
	return []string{
		"DB_HOST=127.0.0.1",
		"DB_PORT=1",
		"DB_USER=postgres",
		"DB_PASSWORD=postgres",
		"DB_NAME=rampsync",
		"DB_SSLMODE=disable",
		"DB_AUTO_MIGRATE=false",
	}
}

func TestMainProcess_ExitsOnRedisInitFailure(t *testing.T) {
	if isHelperProcess(t.Name()) {
		main()
		return
	}

	err := runHelperProcess(t, t.Name(), "SERVER_ENV=development", "REDIS_URL=redis://127.0.0.1:0")
	if err == nil {
		t.Fatalf("expected helper process to exit with error")
	}
}

func TestMainProcess_ExitsOnMalformedWebhookKey(t *testing.T) {
	if isHelperProcess(t.Name()) {
		main()
		return
	}

	redisSrv, err := miniredis.Run()
	if err != nil {
		t.Skipf("skip: miniredis not available in this environment: %v", err)
	}
	defer redisSrv.Close()

	env := append(unreachableDBEnv(),
		"SERVER_ENV=development",
		"REDIS_URL=redis://"+redisSrv.Addr(),
		"PROVIDER_WEBHOOK_PUBLIC_KEY=%%%not-a-key%%%",
	)
	if err := runHelperProcess(t, t.Name(), env...); err == nil {
		t.Fatalf("expected helper process to refuse a malformed webhook key")
	}
}

func TestMainProcess_ExitsOnInvalidServerPortAfterSetup(t *testing.T) {
	if isHelperProcess(t.Name()) {
		main()
		return
	}

	redisSrv, err := miniredis.Run()
	if err != nil {
		t.Skipf("skip: miniredis not available in this environment: %v", err)
	}
	defer redisSrv.Close()

	// The DB ping fails fast but boot continues up to the listener.
	env := append(unreachableDBEnv(),
		"SERVER_ENV=development",
		"SERVER_PORT=invalid-port",
		"REDIS_URL=redis://"+redisSrv.Addr(),
	)
	if err := runHelperProcess(t, t.Name(), env...); err == nil {
		t.Fatalf("expected helper process to exit with error on invalid port")
	}
}
