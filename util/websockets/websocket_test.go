package websockets

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestSubscribeThenBroadcast(t *testing.T) {
	manager := NewWebSocketManager()
	go manager.Run()

	srv := httptest.NewServer(http.HandlerFunc(manager.HandleConnections))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	sub := Message{Type: MsgTypeSubscribe, UserID: "viewer-1", Latitude: 35.19, Longitude: 33.38}
	if err := conn.WriteJSON(sub); err != nil {
		t.Fatalf("subscribe write failed: %v", err)
	}

	// Let the manager register the client and consume the subscribe
	// before broadcasting.
	time.Sleep(100 * time.Millisecond)

	manager.BroadcastWorkerLocation("worker-1", 35.2, 33.4)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Message
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("broadcast read failed: %v", err)
	}
	if got.Type != MsgTypeWorkerLocation {
		t.Errorf("Type = %q; want %q", got.Type, MsgTypeWorkerLocation)
	}
	if got.WorkerID != "worker-1" {
		t.Errorf("WorkerID = %q; want worker-1", got.WorkerID)
	}
	if got.Latitude != 35.2 || got.Longitude != 33.4 {
		t.Errorf("position = (%v, %v); want (35.2, 33.4)", got.Latitude, got.Longitude)
	}
}
