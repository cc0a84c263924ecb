// Package supabase is a thin PostgREST and Supabase Auth client. The
// backend talks to the database exclusively through PostgREST with the
// service key; per-user row security is enforced by scoping queries to
// user_id in the repositories.
package supabase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Client represents a Supabase client
type Client struct {
	URL        string
	ServiceKey string
	HTTPClient *http.Client
}

// NewClient creates a new Supabase client
func NewClient(url, serviceKey string) *Client {
	return &Client{
		URL:        url,
		ServiceKey: serviceKey,
		HTTPClient: &http.Client{},
	}
}

// do executes a PostgREST request against a table and returns the raw
// response body. query becomes URL parameters, data (when non-nil) is
// sent as the JSON body, prefer sets the Prefer header.
func (c *Client) do(method, table string, query map[string]interface{}, data interface{}, prefer string) ([]byte, error) {
	url := fmt.Sprintf("%s/rest/v1/%s", c.URL, table)

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	for key, value := range query {
		q.Add(key, fmt.Sprintf("%v", value))
	}
	req.URL.RawQuery = q.Encode()

	req.Header.Set("apikey", c.ServiceKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.ServiceKey))
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("supabase error: %s", string(respBody))
	}

	return respBody, nil
}

// Query executes a query on a Supabase table
func (c *Client) Query(table string, query map[string]interface{}) ([]byte, error) {
	return c.do("GET", table, query, nil, "")
}

// Insert inserts one record, or a slice of records, into a Supabase table
func (c *Client) Insert(table string, data interface{}) ([]byte, error) {
	return c.do("POST", table, nil, data, "return=representation")
}

// Update updates the record with the given id
func (c *Client) Update(table string, id string, data interface{}) ([]byte, error) {
	query := map[string]interface{}{"id": fmt.Sprintf("eq.%s", id)}
	return c.do("PATCH", table, query, data, "return=representation")
}

// UpdateWhere updates records matching a query
func (c *Client) UpdateWhere(table string, query map[string]interface{}, data interface{}) ([]byte, error) {
	return c.do("PATCH", table, query, data, "return=representation")
}

// Upsert inserts or updates a record in a Supabase table.
// onConflict specifies the columns to detect conflicts (e.g., "user_id")
func (c *Client) Upsert(table string, data interface{}, onConflict string) ([]byte, error) {
	query := map[string]interface{}{"on_conflict": onConflict}
	// resolution=merge-duplicates makes PostgREST update existing rows.
	return c.do("POST", table, query, data, "return=representation,resolution=merge-duplicates")
}

// Delete deletes the record with the given id
func (c *Client) Delete(table string, id string) error {
	query := map[string]interface{}{"id": fmt.Sprintf("eq.%s", id)}
	_, err := c.do("DELETE", table, query, nil, "")
	return err
}

// DeleteWhere deletes records matching a query
func (c *Client) DeleteWhere(table string, query map[string]interface{}) error {
	_, err := c.do("DELETE", table, query, nil, "")
	return err
}

// VerifyToken verifies a JWT token with Supabase
func (c *Client) VerifyToken(token string) (*User, error) {
	url := fmt.Sprintf("%s/auth/v1/user", c.URL)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("apikey", c.ServiceKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("token verification failed (status %d): %s", resp.StatusCode, string(body))
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}

	return &user, nil
}

// User represents a Supabase user
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
