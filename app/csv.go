package app

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// writeSamplesCSV writes one sample per line, formatted with the shortest
// representation at bitSize precision.
func writeSamplesCSV(csvPath string, samples []float64, bitSize int) error {
	outFile, outFileErr := os.Create(csvPath)
	if outFileErr != nil {
		return fmt.Errorf("failed to create CSV output %s: %w", csvPath, outFileErr)
	}
	writer := csv.NewWriter(outFile)
	record := make([]string, 1)
	for _, eachSample := range samples {
		record[0] = strconv.FormatFloat(eachSample, 'g', -1, bitSize)
		if writeErr := writer.Write(record); writeErr != nil {
			outFile.Close()
			return writeErr
		}
	}
	writer.Flush()
	if flushErr := writer.Error(); flushErr != nil {
		outFile.Close()
		return flushErr
	}
	return outFile.Close()
}
