package bot

// DailyPromptState tracks the single open prompt and who has already
// responded to it. Exactly one value exists per process; it is owned by the
// runner loop and never touched from other goroutines, so the
// check-then-mark in Accept is atomic by construction.
type DailyPromptState struct {
	promptMessageID string
	threadID        string
	responded       map[string]struct{}
}

func NewDailyPromptState() *DailyPromptState {
	return &DailyPromptState{responded: map[string]struct{}{}}
}

// Reset clears everything at the start of a firing. Until Open is called
// again there is no open prompt and every reply is rejected.
func (s *DailyPromptState) Reset() {
	s.promptMessageID = ""
	s.threadID = ""
	s.responded = map[string]struct{}{}
}

// Open records the published prompt message and the day's thread.
func (s *DailyPromptState) Open(messageID, threadID string) {
	s.promptMessageID = messageID
	s.threadID = threadID
}

// Accept reports whether a reply referencing refID from userID should be
// graded, and marks the user as responded when it should. A reply is
// accepted only when it targets the currently open prompt and the user has
// not responded today.
func (s *DailyPromptState) Accept(refID, userID string) bool {
	if s.promptMessageID == "" || refID != s.promptMessageID {
		return false
	}
	if _, ok := s.responded[userID]; ok {
		return false
	}
	s.responded[userID] = struct{}{}
	return true
}

// Unmark returns a user's response slot, used when grading failed so the
// user may try again the same day.
func (s *DailyPromptState) Unmark(userID string) {
	delete(s.responded, userID)
}

func (s *DailyPromptState) ThreadID() string        { return s.threadID }
func (s *DailyPromptState) PromptMessageID() string { return s.promptMessageID }

func (s *DailyPromptState) RespondedCount() int { return len(s.responded) }
