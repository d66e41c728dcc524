// Package main provides a command line client that streams a user's live
// activity feed from the server.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"filmorate/internal/models"

	"github.com/gorilla/websocket"
)

func main() {
	host := flag.String("host", "localhost:8080", "API server host")
	userID := flag.Int64("user", 1, "ID of the user whose feed to watch")
	secure := flag.Bool("tls", false, "Connect with wss")
	flag.Parse()

	if *userID <= 0 {
		log.Fatal("❌ -user must be a positive id")
	}

	scheme := "ws"
	if *secure {
		scheme = "wss"
	}
	u := url.URL{Scheme: scheme, Host: *host, Path: fmt.Sprintf("/users/%d/feed/live", *userID)}

	log.Printf("📡 Connecting to %s", u.String())
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, resp, err := dialer.Dial(u.String(), nil)
	if err != nil {
		if resp != nil {
			log.Fatalf("❌ Dial failed with status %d: %v", resp.StatusCode, err)
		}
		log.Fatalf("❌ Dial failed: %v", err)
	}
	defer func() { _ = conn.Close() }()
	log.Printf("✅ Watching feed of user %d (Ctrl+C to stop)", *userID)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Printf("read error: %v", err)
				}
				return
			}
			printEvent(msg)
		}
	}()

	select {
	case <-done:
		log.Println("🔌 Server closed the connection")
	case <-interrupt:
		log.Println("🛑 Interrupted by user")
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}
}

func printEvent(msg []byte) {
	var ev models.Event
	if err := json.Unmarshal(msg, &ev); err != nil || ev.ID == 0 {
		fmt.Println(string(msg))
		return
	}
	fmt.Printf("%s  #%d  %-6s %-6s entity=%d\n",
		ev.CreatedAt().Format(time.RFC3339), ev.ID, ev.EventType, ev.Operation, ev.EntityID)
}
