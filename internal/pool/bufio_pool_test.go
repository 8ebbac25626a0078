package pool

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufioPool(t *testing.T) {
	assert := assert.New(t)

	t.Run("Reader Get and Put", func(t *testing.T) {
		br := GetReader(strings.NewReader("UNA:+.? '"))
		assert.Equal(BufferSize, br.Size())

		data, err := io.ReadAll(br)
		assert.NoError(err)
		assert.Equal("UNA:+.? '", string(data))
		PutReader(br)

		// a reused reader must not leak buffered bytes from the previous owner
		br2 := GetReader(strings.NewReader("UNB'"))
		data, err = io.ReadAll(br2)
		assert.NoError(err)
		assert.Equal("UNB'", string(data))
		PutReader(br2)
	})

	t.Run("Writer Get and Put", func(t *testing.T) {
		var buf1 bytes.Buffer
		bw := GetWriter(&buf1)
		_, _ = bw.WriteString("discarded")
		PutWriter(bw)
		assert.Zero(buf1.Len())

		var buf2 bytes.Buffer
		bw2 := GetWriter(&buf2)
		_, _ = bw2.WriteString("UNH'")
		assert.NoError(bw2.Flush())
		PutWriter(bw2)
		assert.Equal("UNH'", buf2.String())
	})

	t.Run("Concurrent Get and Put", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				var buf bytes.Buffer
				bw := GetWriter(&buf)
				br := GetReader(strings.NewReader("A'B'"))
				_, err := io.Copy(bw, br)
				assert.NoError(err)
				assert.NoError(bw.Flush())
				assert.Equal("A'B'", buf.String())
				PutReader(br)
				PutWriter(bw)
			}()
		}
		wg.Wait()
	})
}
