/*
Copyright © 2025 Travis Lyons travis.lyons@gmail.com

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"

	"github.com/creativeprojects/go-selfupdate"
)

// repositorySlug is the GitHub repository releases are published to.
const repositorySlug = "trly/dockr"

// releaseState describes how the running build compares to the newest release.
type releaseState int

const (
	releaseNotFound releaseState = iota
	releaseCurrent
	releaseNewer
)

// latestRelease looks up the newest published release. found is false when
// nothing is published for this platform.
var latestRelease = func(ctx context.Context) (*selfupdate.Release, bool, error) {
	return selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repositorySlug))
}

// checkRelease compares current with the newest release. The release is nil
// when the state is releaseNotFound.
func checkRelease(ctx context.Context, current string) (*selfupdate.Release, releaseState, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	latest, found, err := latestRelease(ctx)
	if err != nil {
		return nil, releaseNotFound, err
	}
	switch {
	case !found:
		return nil, releaseNotFound, nil
	case latest.LessOrEqual(current):
		return latest, releaseCurrent, nil
	default:
		return latest, releaseNewer, nil
	}
}

// isDevBuild reports whether the binary was built without release metadata.
func isDevBuild() bool {
	return Version == "dev"
}
