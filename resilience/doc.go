// Package resilience provides retry with exponential backoff and jitter
// for transient failures against remote engines.
//
//	result, err := resilience.Retry(ctx, resilience.DefaultRetryConfig(), func() (T, error) {
//	    return client.Do(ctx, req)
//	})
package resilience
