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

	"github.com/btcsuite/btcd/btcutil"
	"github.com/gagliardetto/solana-go"
	"github.com/urfave/cli/v2"

	"github.com/NikhilRaikwar/solpacket-daemon/pkg/reqsig"
)

var (
	solpacketDataDir = btcutil.AppDataDir("solpacket", false)
	statePath        = path.Join(solpacketDataDir, "state.json")
)

func main() {
	app := cli.NewApp()

	app.Version = "0.0.1"
	app.Name = "solpacket CLI"
	app.Usage = "Command line interface for the solpacketd daemon"
	app.Commands = append(
		app.Commands,
		&configCmd,
		&genkey,
		&deposit,
		&balance,
		&create,
		&claim,
		&refund,
		&info,
		&list,
		&link,
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
	if _, err := os.Stat(solpacketDataDir); os.IsNotExist(err) {
		os.Mkdir(solpacketDataDir, os.ModeDir|0755)
	}

	currentData, err := getState()
	if err != nil {
		currentData = map[string]string{}
	}
	for key, value := range data {
		currentData[key] = value
	}

	content, err := json.Marshal(currentData)
	if err != nil {
		return err
	}
	return os.WriteFile(statePath, content, 0644)
}

func getDaemonURL() (string, error) {
	state, err := getState()
	if err != nil {
		return "", err
	}
	url, ok := state["daemon_url"]
	if !ok {
		return "", errors.New("daemon url is missing: try 'config init'")
	}
	return url, nil
}

func getPrivateKey() (solana.PrivateKey, error) {
	state, err := getState()
	if err != nil {
		return nil, err
	}
	secret, ok := state["private_key"]
	if !ok {
		return nil, errors.New("keypair is missing: try 'genkey'")
	}
	return solana.PrivateKeyFromBase58(secret)
}

// doSignedPost signs the body with the configured keypair and posts it to the
// daemon, returning the decoded JSON reply.
func doSignedPost(urlPath string, payload interface{}) (map[string]interface{}, error) {
	daemonURL, err := getDaemonURL()
	if err != nil {
		return nil, err
	}
	privateKey, err := getPrivateKey()
	if err != nil {
		return nil, err
	}

	body := []byte{}
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}

	signature, err := reqsig.Sign(privateKey, body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(
		http.MethodPost, daemonURL+urlPath, bytes.NewReader(body),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(reqsig.HeaderPubkey, privateKey.PublicKey().String())
	req.Header.Set(reqsig.HeaderSignature, signature)

	return doRequest(req)
}

func doGet(urlPath string) (map[string]interface{}, error) {
	daemonURL, err := getDaemonURL()
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(http.MethodGet, daemonURL+urlPath, nil)
	if err != nil {
		return nil, err
	}
	return doRequest(req)
}

func doRequest(req *http.Request) (map[string]interface{}, error) {
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	reply := map[string]interface{}{}
	if err := json.Unmarshal(content, &reply); err != nil {
		return nil, fmt.Errorf("unexpected reply: %s", string(content))
	}

	if resp.StatusCode >= 400 {
		if errBody, ok := reply["error"].(map[string]interface{}); ok {
			return nil, fmt.Errorf("%v", errBody["message"])
		}
		return nil, fmt.Errorf("request failed with status %d", resp.StatusCode)
	}
	return reply, nil
}

func printRespJSON(resp interface{}) {
	content, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		fmt.Println("unable to decode response")
		return
	}
	fmt.Println(string(content))
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[solpacket] %v\n", err)
	os.Exit(1)
}
