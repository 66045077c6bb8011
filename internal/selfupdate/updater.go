package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/mod/semver"
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
)

// maxDownload bounds any single release file.
const maxDownload = 128 << 20

// Stage is a step of an update, reported in order.
type Stage string

const (
	StageResolve  Stage = "resolve"
	StageDownload Stage = "download"
	StageVerify   Stage = "verify"
	StageInstall  Stage = "install"
)

type Progress struct {
	Stage   Stage
	Message string
}

// UpdateInput selects the release to install. An empty TargetVersion means
// the latest release.
type UpdateInput struct {
	CurrentVersion string
	TargetVersion  string
}

// Plan is the release file an update installs.
type Plan struct {
	Version      string
	Asset        string
	ArchiveURL   string
	ChecksumsURL string
}

// Plan resolves the release to install for the running platform without
// downloading it.
func (c *Checker) Plan(ctx context.Context, input *UpdateInput) (*Plan, error) {
	if !semver.IsValid(canonical(input.CurrentVersion)) {
		return nil, ErrDevBuild
	}

	tag := canonical(input.TargetVersion)
	switch {
	case tag == "":
		res, err := c.Check(ctx, &CheckInput{Version: input.CurrentVersion})
		if err != nil {
			return nil, fmt.Errorf("check for updates: %w", err)
		}
		if !res.UpdateAvailable {
			return nil, ErrAlreadyLatest
		}
		tag = res.LatestVersion
	case !semver.IsValid(tag):
		return nil, fmt.Errorf("invalid version %q", input.TargetVersion)
	}

	asset, err := releaseAsset(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return nil, err
	}
	dir := fmt.Sprintf("%s/%s/%s/releases/download/%s", strings.TrimRight(c.downloadBaseURL, "/"), c.owner, c.repo, tag)
	return &Plan{
		Version:      tag,
		Asset:        asset,
		ArchiveURL:   dir + "/" + asset,
		ChecksumsURL: dir + "/checksums.txt",
	}, nil
}

// Update replaces the running executable with the planned release. The
// archive is checked against the release's checksums.txt before anything
// on disk changes. progress may be nil.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, progress func(Progress)) (*Plan, error) {
	report := func(s Stage, format string, args ...any) {
		if progress != nil {
			progress(Progress{Stage: s, Message: fmt.Sprintf(format, args...)})
		}
	}

	report(StageResolve, "Looking for a newer aipath...")
	plan, err := c.Plan(ctx, input)
	if err != nil {
		return nil, err
	}

	report(StageDownload, "Downloading aipath %s (%s)...", plan.Version, plan.Asset)
	archive, err := c.fetch(ctx, plan.ArchiveURL)
	if err != nil {
		return nil, fmt.Errorf("download archive: %w", err)
	}
	sums, err := c.fetch(ctx, plan.ChecksumsURL)
	if err != nil {
		return nil, fmt.Errorf("download checksums: %w", err)
	}

	report(StageVerify, "Verifying %s...", plan.Asset)
	want, err := checksumFor(sums, plan.Asset)
	if err != nil {
		return nil, err
	}
	if got := sha256.Sum256(archive); !strings.EqualFold(hex.EncodeToString(got[:]), want) {
		return nil, fmt.Errorf("%w: %s does not match checksums.txt", ErrChecksum, plan.Asset)
	}
	binary, err := unpack(archive, plan.Asset)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", plan.Asset, err)
	}

	target, err := c.execPath()
	if err != nil {
		return nil, fmt.Errorf("locate running executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(target); err == nil {
		target = resolved
	}
	report(StageInstall, "Installing to %s...", target)
	if err := install(binary, target); err != nil {
		return nil, err
	}
	return plan, nil
}

// releaseAsset names the archive published for a platform. macOS ships a
// single universal binary.
func releaseAsset(goos, goarch string) (string, error) {
	arch, ok := map[string]string{"amd64": "x86_64", "arm64": "arm64", "386": "i386"}[goarch]
	switch {
	case goos == "darwin":
		return binaryName + "_Darwin_all.tar.gz", nil
	case goos != "linux" && goos != "windows":
		return "", fmt.Errorf("no aipath release for %s", goos)
	case !ok:
		return "", fmt.Errorf("no aipath release for %s/%s", goos, goarch)
	case goos == "windows":
		return fmt.Sprintf("%s_Windows_%s.zip", binaryName, arch), nil
	default:
		return fmt.Sprintf("%s_Linux_%s.tar.gz", binaryName, arch), nil
	}
}

func (c *Checker) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownload+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxDownload {
		return nil, fmt.Errorf("%s is larger than %d MiB", url, maxDownload>>20)
	}
	return data, nil
}

// checksumFor finds asset in sha256sum output. Both text ("hash  name")
// and binary ("hash *name") lines are accepted.
func checksumFor(sums []byte, asset string) (string, error) {
	sc := bufio.NewScanner(bytes.NewReader(sums))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) != 2 {
			continue
		}
		if strings.TrimPrefix(fields[1], "*") == asset {
			return fields[0], nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("read checksums: %w", err)
	}
	return "", fmt.Errorf("%w: checksums.txt has no entry for %s", ErrChecksum, asset)
}

// unpack returns the aipath executable from a release archive.
func unpack(archive []byte, asset string) ([]byte, error) {
	if strings.HasSuffix(asset, ".zip") {
		zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
		if err != nil {
			return nil, err
		}
		for _, f := range zr.File {
			if f.FileInfo().IsDir() || path.Base(f.Name) != binaryName+".exe" {
				continue
			}
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer func() { _ = rc.Close() }()
			return io.ReadAll(io.LimitReader(rc, maxDownload))
		}
		return nil, fmt.Errorf("%s.exe not in archive", binaryName)
	}

	gz, err := gzip.NewReader(bytes.NewReader(archive))
	if err != nil {
		return nil, err
	}
	defer func() { _ = gz.Close() }()
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil, fmt.Errorf("%s not in archive", binaryName)
		}
		if err != nil {
			return nil, err
		}
		if hdr.Typeflag == tar.TypeReg && path.Base(hdr.Name) == binaryName {
			return io.ReadAll(io.LimitReader(tr, maxDownload))
		}
	}
}

// install swaps binary in for target. The new file is written next to the
// target so the final rename stays on one filesystem, and it takes the
// target's permissions.
func install(binary []byte, target string) error {
	info, err := os.Stat(target)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+binaryName+"-update-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(binary); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), info.Mode().Perm()); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), target)
}
