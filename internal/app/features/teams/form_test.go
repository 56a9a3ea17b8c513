package teams

import (
	"testing"

	"github.com/peerloop/peerloop/internal/app/system/inputval"
)

func TestTeamForm_Validation(t *testing.T) {
	if err := inputval.CheckStruct(teamForm{Name: "Code Crusaders"}); err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}
	if err := inputval.CheckStruct(teamForm{Section: "CS-A"}); err == nil {
		t.Error("expected nameless team to be rejected")
	}
}
