package awsx

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// STSAPI is the part of the STS client used to check who a session belongs to.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// CallerIdentity represents AWS caller identity information.
type CallerIdentity struct {
	Account string
	Arn     string
	UserID  string
}

func (c CallerIdentity) String() string {
	return fmt.Sprintf("account %s (%s)", c.Account, c.Arn)
}

// IdentityChecker resolves the identity behind an aws.Config.
type IdentityChecker struct {
	newAPI func(aws.Config) STSAPI
}

func NewIdentityChecker() IdentityChecker {
	return IdentityChecker{
		newAPI: func(cfg aws.Config) STSAPI { return sts.NewFromConfig(cfg) },
	}
}

// Check calls GetCallerIdentity. This is the first point where bad keys or a
// bad region are reported, so it is only run on request.
func (c IdentityChecker) Check(ctx context.Context, cfg aws.Config) (CallerIdentity, error) {
	out, err := c.newAPI(cfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return CallerIdentity{}, fmt.Errorf("get caller identity: %w", err)
	}
	return CallerIdentity{
		Account: aws.ToString(out.Account),
		Arn:     aws.ToString(out.Arn),
		UserID:  aws.ToString(out.UserId),
	}, nil
}
