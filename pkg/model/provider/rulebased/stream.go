package rulebased

import (
	"io"

	"github.com/dexora-ai/dexora/pkg/chat"
)

type scriptedStream struct {
	responses []chat.MessageStreamResponse
	pos       int
}

func (s *scriptedStream) Recv() (chat.MessageStreamResponse, error) {
	if s.pos >= len(s.responses) {
		return chat.MessageStreamResponse{}, io.EOF
	}
	resp := s.responses[s.pos]
	s.pos++
	return resp, nil
}

func (s *scriptedStream) Close() {
	s.pos = len(s.responses)
}
