package config

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

func TestGetters(t *testing.T) {
	c := map[string]string{
		"PORT":      "9000",
		"BAD_INT":   "abc",
		"FLAG":      "true",
		"WAIT":      "90s",
		"LIST":      " a@x.io, ,B@x.io ",
		"EMPTY_STR": "",
	}

	if got := GetString(c, "PORT", "8080"); got != "9000" {
		t.Fatalf("GetString = %q", got)
	}
	if got := GetString(c, "MISSING", "fallback"); got != "fallback" {
		t.Fatalf("GetString missing = %q", got)
	}
	if got := GetInt(c, "BAD_INT", 7); got != 7 {
		t.Fatalf("GetInt bad = %d", got)
	}
	if !GetBool(c, "FLAG", false) {
		t.Fatalf("GetBool expected true")
	}
	if got := GetDuration(c, "WAIT", time.Second); got != 90*time.Second {
		t.Fatalf("GetDuration = %v", got)
	}
	list := GetList(c, "LIST")
	if len(list) != 2 || list[0] != "a@x.io" || list[1] != "B@x.io" {
		t.Fatalf("GetList = %v", list)
	}
	if GetList(c, "MISSING") != nil {
		t.Fatalf("GetList missing should be nil")
	}
}

func TestLoadSettings(t *testing.T) {
	s := Load(map[string]string{
		"ALLOWED_EMAILS":       "Alice@Example.com,bob@example.com",
		"NEXT_PUBLIC_BASE_URL": "https://openspace.dev/",
		"DB_TYPE":              "SQLITE",
	})

	if s.BaseURL != "https://openspace.dev" {
		t.Fatalf("BaseURL = %q", s.BaseURL)
	}
	if s.AllowedEmails[0] != "alice@example.com" {
		t.Fatalf("allowed emails not lowercased: %v", s.AllowedEmails)
	}
	if s.Database.Type != "sqlite" {
		t.Fatalf("db type = %q", s.Database.Type)
	}
	if len(s.AcceptedOrigins) != 1 || s.AcceptedOrigins[0] != "*" {
		t.Fatalf("accepted origins default = %v", s.AcceptedOrigins)
	}
	if s.Port != "8080" {
		t.Fatalf("port default = %q", s.Port)
	}
}

type fakeParameterStore struct {
	pages []*ssm.GetParametersByPathOutput
	calls int
}

func (f *fakeParameterStore) GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	page := f.pages[f.calls]
	f.calls++
	return page, nil
}

func TestLoadSSMParameters(t *testing.T) {
	store := &fakeParameterStore{pages: []*ssm.GetParametersByPathOutput{
		{
			Parameters: []types.Parameter{{Name: aws.String("/openspace/prod/AUTH_GITHUB_SECRET"), Value: aws.String("s3cr3t")}},
			NextToken:  aws.String("next"),
		},
		{
			Parameters: []types.Parameter{{Name: aws.String("/openspace/prod/SESSION_SECRET"), Value: aws.String("jwt")}},
		},
	}}

	params, err := LoadSSMParameters(context.Background(), store, "/openspace/prod")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if store.calls != 2 {
		t.Fatalf("expected 2 pages, got %d", store.calls)
	}
	if params["AUTH_GITHUB_SECRET"] != "s3cr3t" || params["SESSION_SECRET"] != "jwt" {
		t.Fatalf("unexpected params: %v", params)
	}

	merged := Merge(map[string]string{"SESSION_SECRET": "env"}, params)
	if merged["SESSION_SECRET"] != "jwt" {
		t.Fatalf("ssm value should override env, got %q", merged["SESSION_SECRET"])
	}
}

func TestLoadSSMParametersEmptyPrefix(t *testing.T) {
	params, err := LoadSSMParameters(context.Background(), &fakeParameterStore{}, "")
	if err != nil || len(params) != 0 {
		t.Fatalf("expected empty result, got %v %v", params, err)
	}
}
