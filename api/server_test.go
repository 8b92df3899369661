package api

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/psharishgithub/open-space-platform-pro/config"
)

func TestServer_ShutdownReportsClosedWithoutBlocking(t *testing.T) {
	api := newTestAPI(t, func(s *config.Settings) { s.Port = "0" })
	server, err := NewServer(NewServices(api.db, api.settings, api.github, nil, nil), api.settings)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	errChannel := make(chan error, 2)
	go server.Start(errChannel)
	errChannel <- errors.New("interrupt")

	if got := <-errChannel; got.Error() != "interrupt" {
		t.Fatalf("unexpected first error %v", got)
	}
	server.ShutdownGracefully(5 * time.Second)

	select {
	case err := <-errChannel:
		if !errors.Is(err, http.ErrServerClosed) {
			t.Fatalf("expected ErrServerClosed, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not report shutdown")
	}
}

func TestNewServer_RequiresSessionSecret(t *testing.T) {
	api := newTestAPI(t)
	settings := api.settings
	settings.SessionSecret = ""
	if _, err := NewServer(NewServices(api.db, settings, api.github, nil, nil), settings); err == nil {
		t.Fatalf("expected an error without a session secret")
	}
}
