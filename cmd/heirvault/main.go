package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/urfave/cli/v2"
)

var (
	heirvaultDataDir = btcutil.AppDataDir("heirvault-operator", false)
	statePath        = path.Join(heirvaultDataDir, "state.json")

	httpClient = &http.Client{Timeout: 30 * time.Second}
)

func main() {
	app := cli.NewApp()

	app.Version = "0.0.1"
	app.Name = "heirvault operator CLI"
	app.Usage = "Command line interface for heirvaultd daemon operators"
	app.Commands = append(
		app.Commands,
		&cliConfig,
		&createvault,
		&vaultstatus,
		&listvaults,
		&deposit,
		&withdraw,
		&heartbeat,
		&addbeneficiary,
		&removebeneficiary,
		&resign,
		&settle,
		&listdeposits,
		&listwithdrawals,
		&listsettlements,
		&addwebhook,
		&removewebhook,
	)

	err := app.Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

func getState() (map[string]string, error) {
	data := map[string]string{}

	file, err := os.ReadFile(statePath)
	if err != nil {
		return nil, errors.New("get config state error: try 'config init'")
	}
	json.Unmarshal(file, &data)

	return data, nil
}

func setState(data map[string]string) error {
	if _, err := os.Stat(heirvaultDataDir); os.IsNotExist(err) {
		os.Mkdir(heirvaultDataDir, os.ModeDir|0755)
	}

	file, err := os.OpenFile(statePath, os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}

	currentData, err := getState()
	if err != nil {
		return err
	}

	mergedData := merge(currentData, data)

	jsonString, err := json.Marshal(mergedData)
	if err != nil {
		return err
	}
	if err := os.WriteFile(statePath, jsonString, 0644); err != nil {
		return fmt.Errorf("writing to file: %w", err)
	}

	return nil
}

func merge(maps ...map[string]string) map[string]string {
	merge := make(map[string]string, 0)
	for _, m := range maps {
		for k, v := range m {
			merge[k] = v
		}
	}
	return merge
}

// sendRequest calls the daemon's REST interface with the configured bearer
// token and returns the raw response body. Non-2xx responses are errors.
func sendRequest(method, path string, body interface{}) ([]byte, error) {
	state, err := getState()
	if err != nil {
		return nil, err
	}

	baseURL, ok := state["daemon_url"]
	if !ok {
		return nil, errors.New("missing daemon_url: try 'config init'")
	}

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := state["token"]; token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("daemon replied %d: %s", resp.StatusCode, respBody)
	}
	return respBody, nil
}

func printRespJSON(respBody []byte) {
	if len(respBody) == 0 {
		fmt.Println("done")
		return
	}

	indented := &bytes.Buffer{}
	if err := json.Indent(indented, respBody, "", "\t"); err != nil {
		fmt.Println(string(respBody))
		return
	}
	fmt.Println(indented.String())
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[heirvault] %v\n", err)
	os.Exit(1)
}
