package downloader

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"story-archiver/model"
)

const analyzePath = "/api/stories/analyze"

var ErrAnalyzeFailed = errors.New("failed to analyze story")

// ClientOptions tune the analysis client. Zero values pick the defaults.
type ClientOptions struct {
	Timeout   time.Duration
	Retries   int
	RetryWait time.Duration
	Logger    logrus.FieldLogger
}

// Client talks to the story analysis service.
type Client struct {
	http *resty.Client
	log  logrus.FieldLogger
}

func NewClient(baseURL string, opts ClientOptions) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Retries == 0 {
		opts.Retries = 3
	}
	if opts.RetryWait == 0 {
		opts.RetryWait = 3 * time.Second
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(opts.Timeout).
		SetLogger(log).
		SetHeader("Accept", "application/json").
		SetRetryCount(opts.Retries).
		SetRetryWaitTime(opts.RetryWait).
		SetRetryMaxWaitTime(10 * opts.RetryWait).
		SetRetryAfter(func(client *resty.Client, resp *resty.Response) (time.Duration, error) {
			if resp.StatusCode() == http.StatusTooManyRequests {
				if retryAfter := resp.Header().Get("Retry-After"); retryAfter != "" {
					if seconds, err := time.ParseDuration(retryAfter + "s"); err == nil {
						return seconds, nil
					}
					if t, err := http.ParseTime(retryAfter); err == nil {
						return time.Until(t), nil
					}
				}
				return opts.RetryWait, nil
			}
			return 0, nil
		}).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() == http.StatusTooManyRequests
		})

	return &Client{http: client, log: log}
}

// Analyze asks the service to describe the story at storyURL.
func (c *Client) Analyze(ctx context.Context, storyURL string) (*model.StoryAnalysis, error) {
	c.log.WithField("url", storyURL).Info("Analyzing story")

	analysis := &model.StoryAnalysis{}
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"url": storyURL}).
		SetResult(analysis).
		Post(analyzePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalyzeFailed, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%w: %s", ErrAnalyzeFailed, resp.Status())
	}
	if analysis.Url == "" {
		analysis.Url = storyURL
	}
	return analysis, nil
}
