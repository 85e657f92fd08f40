package ledger

import (
	"fmt"

	"github.com/kolo/xmlrpc"
)

// Client is an XML-RPC client for the external accounting system
type Client struct {
	URL       string
	Database  string
	Username  string
	Password  string
	uid       int
	commonURL string
	objectURL string
}

// NewClient creates an accounting client. An empty URL yields a client that
// reports itself as not connected.
func NewClient(url, db, username, password string) *Client {
	return &Client{
		URL:       url,
		Database:  db,
		Username:  username,
		Password:  password,
		commonURL: fmt.Sprintf("%s/xmlrpc/2/common", url),
		objectURL: fmt.Sprintf("%s/xmlrpc/2/object", url),
	}
}

// IsConfigured reports whether a ledger connection has been set up
func (c *Client) IsConfigured() bool {
	return c != nil && c.URL != "" && c.Database != ""
}

// Authenticate logs in against the common endpoint and caches the user id
func (c *Client) Authenticate() (int, error) {
	client, err := xmlrpc.NewClient(c.commonURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create XML-RPC client: %w", err)
	}
	defer client.Close()

	args := []interface{}{c.Database, c.Username, c.Password, make([]interface{}, 0)}
	var uid int
	if err := client.Call("authenticate", args, &uid); err != nil {
		return 0, fmt.Errorf("ledger authentication failed: %w", err)
	}

	c.uid = uid
	return uid, nil
}

// ExecuteKw invokes a model method on the object endpoint
func (c *Client) ExecuteKw(model, method string, posArgs []interface{}, kwArgs map[string]interface{}, result interface{}) error {
	client, err := xmlrpc.NewClient(c.objectURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create XML-RPC client: %w", err)
	}
	defer client.Close()

	args := []interface{}{
		c.Database,
		c.uid,
		c.Password,
		model,
		method,
		posArgs,
		kwArgs,
	}
	if err := client.Call("execute_kw", args, result); err != nil {
		return fmt.Errorf("ledger %s.%s failed: %w", model, method, err)
	}
	return nil
}

// CreateInvoice creates a customer invoice record and returns its remote id
func (c *Client) CreateInvoice(payload map[string]interface{}) (int64, error) {
	if c.uid == 0 {
		if _, err := c.Authenticate(); err != nil {
			return 0, err
		}
	}

	var id int64
	err := c.ExecuteKw("account.move", "create",
		[]interface{}{payload}, map[string]interface{}{}, &id)
	if err != nil {
		return 0, err
	}
	return id, nil
}
