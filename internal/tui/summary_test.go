package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/specprep/specprep/internal/services"
	"github.com/specprep/specprep/pkg/specprep"
)

func sampleReport() services.RunReport {
	return services.RunReport{
		RunID:    "0f8fad5b-d9cb-469f-a165-70867728950e",
		Duration: 1500 * time.Millisecond,
		Samples: []services.SampleReport{{
			Name:    "parallax",
			Stars:   2,
			Pixels:  8575,
			Columns: 12,
			QC:      specprep.QCReport{InputPixels: 8600, DroppedPixels: 25, ReplacedUncertainties: 3, ReplacedFluxes: 7},
			Output: specprep.WriteResult{
				Prefix: "APOGEE-Hipparcos",
				Files: []specprep.WrittenFile{
					{Path: "out/APOGEE-Hipparcos.fits.gz", SizeBytes: 1024, Checksum: "abcdef0123456789abcdef"},
				},
			},
		}},
	}
}

func TestRenderSummary_Plain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderSummary(&buf, sampleReport(), ModePlain))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	require.Equal(t, "Run 0f8fad5b-d9cb-469f-a165-70867728950e completed in 1.5s", lines[0])
	require.Equal(t, "parallax\tAPOGEE-Hipparcos\t2\t8575\t12\t25\t3\t7", lines[2])
	require.Equal(t, "out/APOGEE-Hipparcos.fits.gz\t1024\tsha256:abcdef0123456789abcdef", lines[3])
}

func TestRenderSummary_DurationRoundedToMilliseconds(t *testing.T) {
	report := sampleReport()
	report.Duration = 1234567891 * time.Nanosecond

	var buf bytes.Buffer
	require.NoError(t, RenderSummary(&buf, report, ModePlain))
	require.True(t, strings.HasPrefix(buf.String(), "Run 0f8fad5b-d9cb-469f-a165-70867728950e completed in 1.235s\n"))
}

func TestRenderSummary_Styled(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderSummary(&buf, sampleReport(), ModeStyled))

	out := buf.String()
	require.Contains(t, out, "0f8fad5b-d9cb-469f-a165-70867728950e")
	require.Contains(t, out, "APOGEE-Hipparcos")
	require.Contains(t, out, "8575")
	require.Contains(t, out, "out/APOGEE-Hipparcos.fits.gz")
	require.Contains(t, out, "1.0 kB")
	require.Contains(t, out, "abcdef012345")
	require.NotContains(t, out, "abcdef0123456789abcdef")
}
