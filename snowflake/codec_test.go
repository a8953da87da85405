package snowflake

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/ceyewan/snowid/xerrors"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		epoch    int64
		offset   int64
		dcID     int64
		workerID int64
		sequence int64
	}{
		{name: "all zero", epoch: DefaultEpoch, offset: 0, dcID: 0, workerID: 0, sequence: 0},
		{name: "typical", epoch: DefaultEpoch, offset: 123456789, dcID: 5, workerID: 10, sequence: 42},
		{name: "max fields", epoch: DefaultEpoch, offset: maxTimestamp, dcID: 31, workerID: 31, sequence: 4095},
		{name: "custom epoch", epoch: 1288834974657, offset: 1000, dcID: 1, workerID: 2, sequence: 3},
		{name: "sequence boundary", epoch: DefaultEpoch, offset: 1, dcID: 0, workerID: 31, sequence: 4095},
		{name: "dc only", epoch: DefaultEpoch, offset: 999999, dcID: 31, workerID: 0, sequence: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := Encode(tt.offset, tt.dcID, tt.workerID, tt.sequence)
			got := Decode(id, tt.epoch)

			if got.Timestamp != tt.epoch+tt.offset {
				t.Errorf("Timestamp = %d, want %d", got.Timestamp, tt.epoch+tt.offset)
			}
			if got.DatacenterID != tt.dcID {
				t.Errorf("DatacenterID = %d, want %d", got.DatacenterID, tt.dcID)
			}
			if got.WorkerID != tt.workerID {
				t.Errorf("WorkerID = %d, want %d", got.WorkerID, tt.workerID)
			}
			if got.Sequence != tt.sequence {
				t.Errorf("Sequence = %d, want %d", got.Sequence, tt.sequence)
			}
			if !got.Time.Equal(time.UnixMilli(tt.epoch + tt.offset)) {
				t.Errorf("Time = %v, want %v", got.Time, time.UnixMilli(tt.epoch+tt.offset))
			}
		})
	}
}

func TestDecode_KnownScenario(t *testing.T) {
	// epoch=2020-01-01，时钟 1577836800123，dc=5 worker=10 seq=0
	id := Encode(123, 5, 10, 0)
	got := Decode(id, 1577836800000)

	if got.Timestamp != 1577836800123 {
		t.Errorf("Timestamp = %d, want 1577836800123", got.Timestamp)
	}
	if got.DatacenterID != 5 || got.WorkerID != 10 || got.Sequence != 0 {
		t.Errorf("Unexpected fields: %+v", got)
	}
}

func TestDecode_EpochDefaulting(t *testing.T) {
	id := Encode(1000, 1, 1, 1)

	if got := Decode(id, 0); got.Timestamp != DefaultEpoch+1000 {
		t.Errorf("epoch=0 should use DefaultEpoch, got %d", got.Timestamp)
	}
	if got := Decode(id, -5); got.Timestamp != DefaultEpoch+1000 {
		t.Errorf("negative epoch should use DefaultEpoch, got %d", got.Timestamp)
	}
}

func TestDecode_MismatchedEpochIsWellDefined(t *testing.T) {
	// epoch 不内嵌在 ID 中：用不同的 epoch 解码得到
	// 错误但确定的时间戳，其余字段不受影响
	id := Encode(500, 3, 4, 5)
	got := Decode(id, 1000000)

	if got.Timestamp != 1000500 {
		t.Errorf("Timestamp = %d, want 1000500", got.Timestamp)
	}
	if got.DatacenterID != 3 || got.WorkerID != 4 || got.Sequence != 5 {
		t.Errorf("Field decoding must not depend on epoch: %+v", got)
	}
}

func TestDecodeString(t *testing.T) {
	t.Run("valid decimal string", func(t *testing.T) {
		id := Encode(123, 5, 10, 7)
		got, err := DecodeString(strconv.FormatUint(id, 10), DefaultEpoch)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if want := Decode(id, DefaultEpoch); got != want {
			t.Errorf("DecodeString = %+v, want %+v", got, want)
		}
	})

	t.Run("malformed input fails fast", func(t *testing.T) {
		inputs := []string{"", "abc", "12x4", "-5", "1.5", "99999999999999999999999"}
		for _, in := range inputs {
			_, err := DecodeString(in, DefaultEpoch)
			if err == nil {
				t.Errorf("Expected error for input %q", in)
				continue
			}
			if !errors.Is(err, ErrMalformedID) {
				t.Errorf("Expected ErrMalformedID for %q, got %v", in, err)
			}
			if code := xerrors.GetCode(err); code != "malformed_id" {
				t.Errorf("Expected code malformed_id for %q, got %q", in, code)
			}
		}
	})
}

func TestTimestampAndToTime(t *testing.T) {
	id := Encode(777, 2, 3, 4)

	if got := Timestamp(id, DefaultEpoch); got != DefaultEpoch+777 {
		t.Errorf("Timestamp = %d, want %d", got, DefaultEpoch+777)
	}
	if got := Timestamp(id, 0); got != DefaultEpoch+777 {
		t.Errorf("Timestamp with epoch=0 = %d, want %d", got, DefaultEpoch+777)
	}

	wantTime := time.UnixMilli(DefaultEpoch + 777).UTC()
	if got := ToTime(id, 0); !got.Equal(wantTime) {
		t.Errorf("ToTime = %v, want %v", got, wantTime)
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID("18446744073709551615") // math.MaxUint64
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if id != ^uint64(0) {
		t.Errorf("ParseID = %d", id)
	}

	if _, err := ParseID("18446744073709551616"); err == nil {
		t.Error("Expected overflow error")
	}
}
