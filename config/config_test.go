package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceyewan/snowid/snowflake"
	"github.com/ceyewan/snowid/xerrors"
)

func TestResolve_Defaults(t *testing.T) {
	resolver, err := New()
	require.NoError(t, err)

	cfg, err := resolver.Resolve()
	require.NoError(t, err)

	// 未配置任何来源时全部留给生成器的库默认值
	assert.Equal(t, int64(0), cfg.Epoch)
	assert.Equal(t, int64(0), cfg.DatacenterID)
	assert.Equal(t, int64(0), cfg.WorkerID)

	gen, err := snowflake.New(cfg)
	require.NoError(t, err)
	assert.NotNil(t, gen)
}

func TestResolve_Environment(t *testing.T) {
	t.Setenv("SNOWID_EPOCH", "1577836800000")
	t.Setenv("SNOWID_DATACENTER_ID", "5")
	t.Setenv("SNOWID_WORKER_ID", "10")

	resolver, err := New()
	require.NoError(t, err)

	cfg, err := resolver.Resolve()
	require.NoError(t, err)
	assert.Equal(t, int64(1577836800000), cfg.Epoch)
	assert.Equal(t, int64(5), cfg.DatacenterID)
	assert.Equal(t, int64(10), cfg.WorkerID)
}

func TestResolve_EnvironmentValidation(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		wantCode string
	}{
		{name: "non-numeric epoch", key: "SNOWID_EPOCH", value: "not-a-number", wantCode: "epoch_invalid"},
		{name: "datacenter too large", key: "SNOWID_DATACENTER_ID", value: "32", wantCode: "datacenter_id_invalid"},
		{name: "negative datacenter", key: "SNOWID_DATACENTER_ID", value: "-1", wantCode: "datacenter_id_invalid"},
		{name: "worker too large", key: "SNOWID_WORKER_ID", value: "99", wantCode: "worker_id_invalid"},
		{name: "non-numeric worker", key: "SNOWID_WORKER_ID", value: "abc", wantCode: "worker_id_invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			resolver, err := New()
			require.NoError(t, err)

			_, err = resolver.Resolve()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidValue)
			assert.Equal(t, tt.wantCode, xerrors.GetCode(err))
		})
	}
}

func TestResolve_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snowid.yaml")
	require.NoError(t, Save(path, &snowflake.Config{
		Epoch:        1577836800000,
		DatacenterID: 3,
		WorkerID:     9,
	}))

	resolver, err := New(WithFile(path))
	require.NoError(t, err)

	cfg, err := resolver.Resolve()
	require.NoError(t, err)
	assert.Equal(t, int64(1577836800000), cfg.Epoch)
	assert.Equal(t, int64(3), cfg.DatacenterID)
	assert.Equal(t, int64(9), cfg.WorkerID)
}

func TestResolve_MissingFileIsNotAnError(t *testing.T) {
	resolver, err := New(WithFile(filepath.Join(t.TempDir(), "absent.yaml")))
	require.NoError(t, err)

	cfg, err := resolver.Resolve()
	require.NoError(t, err)
	assert.Equal(t, int64(0), cfg.WorkerID)
}

func TestResolve_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snowid.yaml")
	require.NoError(t, Save(path, &snowflake.Config{WorkerID: 9, DatacenterID: 3}))

	t.Run("environment beats file", func(t *testing.T) {
		t.Setenv("SNOWID_WORKER_ID", "10")

		resolver, err := New(WithFile(path))
		require.NoError(t, err)

		cfg, err := resolver.Resolve()
		require.NoError(t, err)
		assert.Equal(t, int64(10), cfg.WorkerID)
		assert.Equal(t, int64(3), cfg.DatacenterID) // 仍来自文件
	})

	t.Run("explicit override beats everything", func(t *testing.T) {
		t.Setenv("SNOWID_WORKER_ID", "10")

		resolver, err := New(WithFile(path), WithWorkerID(22), WithDatacenterID(11))
		require.NoError(t, err)

		cfg, err := resolver.Resolve()
		require.NoError(t, err)
		assert.Equal(t, int64(22), cfg.WorkerID)
		assert.Equal(t, int64(11), cfg.DatacenterID)
	})

	t.Run("explicit override is validated", func(t *testing.T) {
		resolver, err := New(WithWorkerID(32))
		require.NoError(t, err)

		_, err = resolver.Resolve()
		require.Error(t, err)
		assert.Equal(t, "worker_id_invalid", xerrors.GetCode(err))
	})
}

func TestResolve_DotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SNOWTEST_WORKER_ID=17\n"), 0o644))
	defer os.Unsetenv("SNOWTEST_WORKER_ID")

	resolver, err := New(WithEnvPrefix("SNOWTEST"), WithDotEnv(envFile))
	require.NoError(t, err)

	cfg, err := resolver.Resolve()
	require.NoError(t, err)
	assert.Equal(t, int64(17), cfg.WorkerID)
}

func TestResolve_Fingerprint(t *testing.T) {
	t.Run("fills only unset fields", func(t *testing.T) {
		resolver, err := New(WithFingerprint(true), WithWorkerID(7))
		require.NoError(t, err)

		cfg, err := resolver.Resolve()
		if err != nil {
			t.Skipf("host fingerprint unavailable: %v", err)
		}
		assert.Equal(t, int64(7), cfg.WorkerID)
		assert.GreaterOrEqual(t, cfg.DatacenterID, int64(0))
		assert.LessOrEqual(t, cfg.DatacenterID, snowflake.MaxDatacenterID)
	})

	t.Run("never touches epoch", func(t *testing.T) {
		resolver, err := New(WithFingerprint(true))
		require.NoError(t, err)

		cfg, err := resolver.Resolve()
		if err != nil {
			t.Skipf("host fingerprint unavailable: %v", err)
		}
		assert.Equal(t, int64(0), cfg.Epoch)
	})
}

func TestHostFingerprint(t *testing.T) {
	fp1, err := HostFingerprint()
	if err != nil {
		t.Skipf("host fingerprint unavailable: %v", err)
	}
	fp2, err := HostFingerprint()
	require.NoError(t, err)

	// 同一主机上必须确定
	assert.Equal(t, fp1, fp2)
	assert.GreaterOrEqual(t, fp1.DatacenterID, int64(0))
	assert.LessOrEqual(t, fp1.DatacenterID, snowflake.MaxDatacenterID)
	assert.GreaterOrEqual(t, fp1.WorkerID, int64(0))
	assert.LessOrEqual(t, fp1.WorkerID, snowflake.MaxWorkerID)
}

func TestSave_Validation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snowid.yaml")

	require.Error(t, Save(path, nil))

	err := Save(path, &snowflake.Config{WorkerID: 32})
	require.Error(t, err)
	assert.Equal(t, "worker_id_invalid", xerrors.GetCode(err))

	err = Save(path, &snowflake.Config{DatacenterID: -1})
	require.Error(t, err)
	assert.Equal(t, "datacenter_id_invalid", xerrors.GetCode(err))
}

func TestWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snowid.yaml")
	require.NoError(t, Save(path, &snowflake.Config{WorkerID: 1}))

	resolver, err := New(WithFile(path))
	require.NoError(t, err)

	cfg, err := resolver.Resolve()
	require.NoError(t, err)
	require.Equal(t, int64(1), cfg.WorkerID)

	changes := make(chan *snowflake.Config, 4)
	resolver.Watch(func(c *snowflake.Config) {
		changes <- c
	})

	require.NoError(t, Save(path, &snowflake.Config{WorkerID: 2}))

	select {
	case got := <-changes:
		assert.Equal(t, int64(2), got.WorkerID)
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for config change notification")
	}
}
