package screener

import (
	"strings"
	"testing"
)

func TestBuildRankingRequestLayout(t *testing.T) {
	job := "Backend Engineer"
	resumes := []string{"Alice, 5y backend", "Bob, UX designer"}

	request := BuildRankingRequest(job, resumes)

	if !strings.HasPrefix(request, "JOB DESCRIPTION:\nBackend Engineer\n\n") {
		t.Fatalf("request does not start with the job description block:\n%s", request)
	}

	first := strings.Index(request, "CV #1:\n---\nAlice, 5y backend\n---\n")
	second := strings.Index(request, "CV #2:\n---\nBob, UX designer\n---\n")
	if first == -1 || second == -1 {
		t.Fatalf("labeled resume blocks missing:\n%s", request)
	}
	if first > second {
		t.Fatal("resume blocks are not in upload order")
	}

	if got := strings.Count(request, "INSTRUCTIONS:"); got != 1 {
		t.Fatalf("expected exactly one instruction block, got %d", got)
	}
	if strings.Index(request, "INSTRUCTIONS:") < second {
		t.Fatal("instruction block must come after the resume blocks")
	}

	if !strings.Contains(request, "Candidate: [Full Name] ([Job Title])") {
		t.Fatal("instruction block lacks the candidate response format")
	}
	if !strings.Contains(request, "No suitable candidate found.") {
		t.Fatal("instruction block lacks the no-candidate sentence")
	}
}

func TestBuildRankingRequestDeterminism(t *testing.T) {
	job := "Backend Engineer"
	resumes := []string{"Alice, 5y backend", "Bob, UX designer"}

	first := BuildRankingRequest(job, resumes)
	second := BuildRankingRequest(job, resumes)

	if first != second {
		t.Fatal("identical inputs must produce byte-identical requests")
	}
}

func TestBuildRankingRequestSingleResume(t *testing.T) {
	request := BuildRankingRequest("Go Developer", []string{"Carol, 3y Go"})

	if strings.Contains(request, "CV #2:") {
		t.Fatalf("unexpected second resume block:\n%s", request)
	}
	if !strings.Contains(request, "CV #1:\n---\nCarol, 3y Go\n---\n") {
		t.Fatalf("resume block missing:\n%s", request)
	}
}
