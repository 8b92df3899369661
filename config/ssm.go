package config

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// ParameterStore is the subset of the SSM client used to read configuration.
type ParameterStore interface {
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

// LoadSSMParameters reads every parameter under prefix (decrypted) and keys it by the
// last path segment, so /openspace/prod/AUTH_GITHUB_SECRET becomes AUTH_GITHUB_SECRET.
func LoadSSMParameters(ctx context.Context, client ParameterStore, prefix string) (map[string]string, error) {
	out := make(map[string]string)
	if prefix == "" {
		return out, nil
	}

	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("read ssm parameters under %s: %w", prefix, err)
		}
		for _, p := range page.Parameters {
			name := strings.TrimSpace(path.Base(aws.ToString(p.Name)))
			if name == "" || name == "." || name == "/" {
				continue
			}
			out[name] = aws.ToString(p.Value)
		}
	}
	return out, nil
}
