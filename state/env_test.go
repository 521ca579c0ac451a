package state

import (
	"bytes"
	"context"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestContextWithEnv(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))

	if env.start.IsZero() {
		t.Error("start time not set")
	}
	if env.RunID == uuid.Nil {
		t.Error("RunID not set")
	}
	if env.Cfg != nil || env.Log != nil || env.Rpt != nil {
		t.Error("fresh environment must not be initialized")
	}

	other := EnvFromContext(ContextWithEnv(context.Background()))
	if env.RunID == other.RunID {
		t.Errorf("expected different run ids, got %s twice", env.RunID)
	}
}

func TestEnvFromContext_Missing(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic when env is not in context")
		}
	}()
	EnvFromContext(context.Background())
}

func TestLocalEnv_Uptime(t *testing.T) {
	env := &LocalEnv{start: time.Now().Add(-time.Minute)}
	if up := env.Uptime(); up < time.Minute || up > 2*time.Minute {
		t.Errorf("Uptime() = %v", up)
	}
}

func TestLocalEnv_RedirectStdLog(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	env := &LocalEnv{Log: zap.New(core)}

	env.RedirectStdLog()
	log.Print("http: proxy error")
	env.RestoreStdLog()

	entries := logs.FilterMessage("http: proxy error").All()
	if len(entries) != 1 {
		t.Fatalf("expected redirected entry, got %v", logs.All())
	}
	if entries[0].Level != zapcore.WarnLevel || entries[0].LoggerName != "stdlog" {
		t.Errorf("unexpected entry %+v", entries[0])
	}

	// restored logger writes to its own output again
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)
	log.Print("after restore")
	if !strings.Contains(buf.String(), "after restore") {
		t.Error("standard logger was not restored")
	}
	if logs.FilterMessage("after restore").Len() != 0 {
		t.Error("standard logger still redirected")
	}
}

func TestLocalEnv_RedirectStdLog_NoLogger(t *testing.T) {
	env := &LocalEnv{}
	env.RedirectStdLog()
	if env.restoreStdLog != nil {
		t.Error("nothing to redirect to without logger")
	}
	env.RestoreStdLog()
}
