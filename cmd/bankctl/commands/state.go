package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/eaglebank/banking/shared/utils"
)

const stateFile = "session.json"

var errNoSession = errors.New("no open session. run `bankctl open` first")

type sessionState struct {
	SessionID string `json:"sessionId"`
	Token     string `json:"token"`
}

func loadState(home string) (*sessionState, error) {
	b, err := os.ReadFile(filepath.Join(home, stateFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, errNoSession
	}
	if err != nil {
		return nil, err
	}
	var st sessionState
	if err := json.Unmarshal(b, &st); err != nil {
		return nil, fmt.Errorf("corrupt session file: %w", err)
	}
	if !utils.ValidateSessionID(st.SessionID) || st.Token == "" {
		return nil, fmt.Errorf("corrupt session file: bad session %q", st.SessionID)
	}
	return &st, nil
}

func saveState(home string, st *sessionState) error {
	b, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(home, stateFile), b, 0o600)
}

func clearState(home string) error {
	err := os.Remove(filepath.Join(home, stateFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
