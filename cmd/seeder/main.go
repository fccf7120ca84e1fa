package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"social-service/internal/shared/jwt"
)

var baseURL = func() string {
	if v := os.Getenv("API_URL"); v != "" {
		return v
	}
	return "http://localhost:8080"
}()

func main() {
	gofakeit.Seed(time.Now().UnixNano())

	users := make([]string, 0, 5)
	tokens := make(map[string]string)
	profileIDs := make(map[string]uint64)

	// Mint a token per synthetic actor; token issuance is the identity
	// provider's job, so the seeder signs its own.
	for i := 0; i < 5; i++ {
		uid := gofakeit.Username()
		tok, err := jwt.Make(uid)
		if err != nil {
			log.Fatalf("token for %s: %v", uid, err)
		}
		users = append(users, uid)
		tokens[uid] = tok
	}

	for _, uid := range users {
		var p struct {
			ID uint64 `json:"id"`
		}
		post(tokens[uid], "/profiles", map[string]any{"bio": gofakeit.Sentence(12)}, &p)
		profileIDs[uid] = p.ID
		log.Printf("profile %d for %s", p.ID, uid)
	}

	postIDs := make([]uint64, 0)
	for _, uid := range users {
		for i := 0; i < 3; i++ {
			var p struct {
				ID uint64 `json:"id"`
			}
			post(tokens[uid], "/posts", map[string]any{
				"title":    gofakeit.BookTitle(),
				"content":  gofakeit.Paragraph(1, 3, 12, " "),
				"hashtags": []string{gofakeit.Hobby(), gofakeit.Hobby()},
			}, &p)
			postIDs = append(postIDs, p.ID)
		}
	}

	for _, uid := range users {
		for _, other := range users {
			if other == uid || gofakeit.Bool() {
				continue
			}
			post(tokens[uid], fmt.Sprintf("/profiles/%d/follow", profileIDs[other]), map[string]any{}, nil)
		}
	}

	for _, uid := range users {
		for _, pid := range postIDs {
			if gofakeit.Bool() {
				continue
			}
			post(tokens[uid], fmt.Sprintf("/posts/%d/like", pid), map[string]any{}, nil)
			post(tokens[uid], fmt.Sprintf("/posts/%d/add-comment", pid), map[string]any{
				"content": gofakeit.Comment(),
			}, nil)
		}
	}

	log.Printf("seeded %d users, %d posts", len(users), len(postIDs))
}

func post(token, path string, body any, out any) {
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, baseURL+path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		log.Printf("POST %s: status %d", path, resp.StatusCode)
		return
	}
	if out != nil {
		_ = json.NewDecoder(resp.Body).Decode(out)
	}
}
