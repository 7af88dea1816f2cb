package hooks

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// SecurityBlock records one denied or blocked action for later audit.
type SecurityBlock struct {
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
	HookType  string    `json:"hook_type"`
	ToolName  string    `json:"tool_name,omitempty"`
	Source    string    `json:"source"`
	Reason    string    `json:"reason,omitempty"`
}

type recorderState struct {
	SecurityBlocks []SecurityBlock `json:"security_blocks"`
	AutoContinues  map[string]int  `json:"auto_continues"`
}

// Recorder persists hook side effects (security blocks, Stop auto-continue
// counters) as a JSON state file under the state directory.
type Recorder struct {
	mu    sync.Mutex
	path  string
	state recorderState
}

// NewRecorder loads (or initializes) the state file under stateDir.
func NewRecorder(stateDir string) (*Recorder, error) {
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory %s: %w", stateDir, err)
	}

	r := &Recorder{
		path:  filepath.Join(stateDir, "hook-state.json"),
		state: recorderState{AutoContinues: make(map[string]int)},
	}

	raw, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	if err := json.Unmarshal(raw, &r.state); err != nil {
		// A corrupt state file starts over rather than wedging every hook.
		r.state = recorderState{AutoContinues: make(map[string]int)}
	}
	if r.state.AutoContinues == nil {
		r.state.AutoContinues = make(map[string]int)
	}
	return r, nil
}

// RecordSecurityBlock appends one block entry and persists.
func (r *Recorder) RecordSecurityBlock(block SecurityBlock) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state.SecurityBlocks = append(r.state.SecurityBlocks, block)
	return r.save()
}

// SecurityBlocks returns a copy of the recorded blocks.
func (r *Recorder) SecurityBlocks() []SecurityBlock {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]SecurityBlock, len(r.state.SecurityBlocks))
	copy(out, r.state.SecurityBlocks)
	return out
}

// IncrementAutoContinue bumps the session's blocked-stop counter and
// returns the new count.
func (r *Recorder) IncrementAutoContinue(sessionID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state.AutoContinues[sessionID]++
	count := r.state.AutoContinues[sessionID]
	if err := r.save(); err != nil {
		return count, err
	}
	return count, nil
}

// AutoContinueCount returns the session's blocked-stop counter.
func (r *Recorder) AutoContinueCount(sessionID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.AutoContinues[sessionID]
}

func (r *Recorder) save() error {
	raw, err := json.MarshalIndent(r.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	if err := os.WriteFile(r.path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}
