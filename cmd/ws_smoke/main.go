package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"task_tracker/internal/domain"
	"task_tracker/internal/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Signs up a throwaway user against a running server, opens the live feed,
// creates a task over HTTP and prints the event that comes back.
func main() {
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	host := flag.String("host", "127.0.0.1:"+port, "server host:port")
	flag.Parse()

	base := "http://" + *host
	client := &http.Client{Timeout: 10 * time.Second}

	var session struct {
		AccessToken string `json:"access_token"`
	}
	email := fmt.Sprintf("smoke-%s@example.com", uuid.NewString()[:8])
	if err := postJSON(client, base+"/api/v1/auth/signup", "", map[string]string{
		"email": email, "password": "smoke-pass", "name": "Smoke",
	}, &session); err != nil {
		logger.Fatal("signup", "error", err)
	}

	conn, _, err := websocket.DefaultDialer.Dial(fmt.Sprintf("ws://%s/ws?token=%s", *host, session.AccessToken), nil)
	if err != nil {
		logger.Fatal("dial ws", "error", err)
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, msg, err := conn.ReadMessage(); err != nil {
		logger.Fatal("read ready", "error", err)
	} else {
		fmt.Printf("connected: %s\n", msg)
	}

	var created domain.Task
	if err := postJSON(client, base+"/api/v1/tasks", session.AccessToken, map[string]any{
		"title": "smoke test task", "priority": "High", "tags": []string{"smoke"},
	}, &created); err != nil {
		logger.Fatal("create task", "error", err)
	}
	fmt.Printf("created task %s\n", created.ID)

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var ev domain.TaskEvent
	if err := conn.ReadJSON(&ev); err != nil {
		logger.Fatal("read event", "error", err)
	}
	if ev.Type != domain.EventTaskCreated || ev.Task == nil || ev.Task.ID != created.ID {
		logger.Fatal("unexpected event", "type", ev.Type)
	}
	fmt.Printf("event received: %s %s\n", ev.Type, ev.Task.ID)
}

func postJSON(client *http.Client, url, token string, body, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return fmt.Errorf("%s: status %d", url, res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(out)
}
