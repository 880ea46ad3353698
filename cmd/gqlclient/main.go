package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Endpoint string
	Username string
	Password string
	Query    string
}

const loginMutation = `mutation Login($username: String!, $password: String!) {
  login(username: $username, password: $password)
}`

const defaultQuery = `{ getAllEmployees { id firstname lastname email designation salary } }`

type gqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

var client = &http.Client{Timeout: 10 * time.Second}

func loadConfig() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env: %v", err)
	}
	cfg := Config{
		Endpoint: os.Getenv("GRAPHQL_ENDPOINT"),
		Username: os.Getenv("GRAPHQL_USERNAME"),
		Password: os.Getenv("GRAPHQL_PASSWORD"),
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = "http://localhost:8080/graphql"
	}

	flag.StringVar(&cfg.Endpoint, "endpoint", cfg.Endpoint, "GraphQL endpoint")
	flag.StringVar(&cfg.Username, "username", cfg.Username, "login username")
	flag.StringVar(&cfg.Password, "password", cfg.Password, "login password")
	flag.StringVar(&cfg.Query, "query", defaultQuery, "query to run after login")
	flag.Parse()
	return cfg
}

func main() {
	cfg := loadConfig()

	var token string
	if cfg.Username != "" {
		data, err := execute(cfg.Endpoint, "", gqlRequest{
			Query:     loginMutation,
			Variables: map[string]interface{}{"username": cfg.Username, "password": cfg.Password},
		})
		if err != nil {
			log.Fatalf("Login failed: %v", err)
		}
		var login struct {
			Login string `json:"login"`
		}
		if err := json.Unmarshal(data, &login); err != nil {
			log.Fatalf("Unexpected login response: %v", err)
		}
		token = login.Login
		log.Printf("Logged in as %s", cfg.Username)
	}

	data, err := execute(cfg.Endpoint, token, gqlRequest{Query: cfg.Query})
	if err != nil {
		log.Fatalf("Query failed: %v", err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		log.Fatalf("Unexpected response: %v", err)
	}
	fmt.Println(out.String())
}

func execute(endpoint, token string, body gqlRequest) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var result gqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	if len(result.Errors) > 0 {
		return nil, errors.New(result.Errors[0].Message)
	}
	return result.Data, nil
}
