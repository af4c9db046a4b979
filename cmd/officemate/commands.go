package main

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	taskStatusFilter string

	searchQuery    string
	searchCategory string
	searchFrom     string
	searchTo       string
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a document for classification",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open file: %w", err)
		}
		defer f.Close()

		var body strings.Builder
		writer := multipart.NewWriter(&body)
		part, err := writer.CreateFormFile("file", filepath.Base(args[0]))
		if err != nil {
			return fmt.Errorf("build multipart body: %w", err)
		}
		if _, err := io.Copy(part, f); err != nil {
			return fmt.Errorf("read file: %w", err)
		}
		if err := writer.Close(); err != nil {
			return fmt.Errorf("finish multipart body: %w", err)
		}

		req, err := http.NewRequestWithContext(cmd.Context(), http.MethodPost, apiURL+"/v1/documents", strings.NewReader(body.String()))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", writer.FormDataContentType())
		return doJSON(req)
	},
}

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List tasks, optionally filtered by status",
	RunE: func(cmd *cobra.Command, _ []string) error {
		endpoint := apiURL + "/v1/tasks"
		if taskStatusFilter != "" {
			endpoint += "?status=" + url.QueryEscape(taskStatusFilter)
		}
		req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}
		return doJSON(req)
	},
}

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "Search documents by text, category, and date window",
	RunE: func(cmd *cobra.Command, _ []string) error {
		params := url.Values{}
		if searchQuery != "" {
			params.Set("query", searchQuery)
		}
		if searchCategory != "" {
			params.Set("category", searchCategory)
		}
		if searchFrom != "" {
			params.Set("from", searchFrom)
		}
		if searchTo != "" {
			params.Set("to", searchTo)
		}

		endpoint := apiURL + "/v1/documents"
		if encoded := params.Encode(); encoded != "" {
			endpoint += "?" + encoded
		}
		req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}
		return doJSON(req)
	},
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the aggregate dashboard summary",
	RunE: func(cmd *cobra.Command, _ []string) error {
		req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, apiURL+"/v1/dashboard", nil)
		if err != nil {
			return err
		}
		return doJSON(req)
	},
}

func init() {
	tasksCmd.Flags().StringVar(&taskStatusFilter, "status", "", "Filter by status (pending, in_progress, completed)")

	documentsCmd.Flags().StringVar(&searchQuery, "query", "", "Substring match on filename or tags")
	documentsCmd.Flags().StringVar(&searchCategory, "category", "", "Category filter (Finance, HR, Procurement, Maintenance)")
	documentsCmd.Flags().StringVar(&searchFrom, "from", "", "Lower creation-date bound (YYYY-MM-DD)")
	documentsCmd.Flags().StringVar(&searchTo, "to", "", "Upper creation-date bound (YYYY-MM-DD)")
}

// doJSON executes the request and pretty-prints the JSON response.
func doJSON(req *http.Request) error {
	client := &http.Client{Timeout: 30 * time.Second}
	res, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("call api: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var pretty map[string]any
	if err := json.Unmarshal(raw, &pretty); err == nil {
		formatted, _ := json.MarshalIndent(pretty, "", "  ")
		raw = formatted
	}
	fmt.Println(string(raw))

	if res.StatusCode >= 400 {
		return fmt.Errorf("api returned %s", res.Status)
	}
	return nil
}
