package formatter

import (
	"bufio"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/tokenforge/image-pool-go/internal/types"
)

// StringLineFormatter encodes entries as comma-separated lines. File ID
// lists inside a rescan entry are pipe-separated. Path fields are
// percent-escaped so IDs containing the delimiters survive a round trip.
type StringLineFormatter struct{}

var _ types.LogFormatter = (*StringLineFormatter)(nil)

func NewStringLineFormatter() *StringLineFormatter {
	return &StringLineFormatter{}
}

func (f *StringLineFormatter) Encode(items []types.WalLogEntry) ([]byte, error) {
	var sb strings.Builder
	for _, item := range items {
		switch v := item.(type) {
		case *types.WalLogPickItem:
			sb.WriteString(fmt.Sprintf("%d,%d,%s,%d,%t\n", item.GetType(), v.RequestID, escapeField(v.FileID), v.Error, v.Success))
		case *types.WalLogRescanItem:
			sb.WriteString(fmt.Sprintf("%d,%s,%s\n", item.GetType(), joinList(v.Added), joinList(v.Removed)))
		case *types.WalLogSnapshotItem:
			sb.WriteString(fmt.Sprintf("%d,%s\n", item.GetType(), escapeField(v.Path)))
		case *types.WalLogRotateItem:
			sb.WriteString(fmt.Sprintf("%d,%s,%s\n", item.GetType(), escapeField(v.OldPath), escapeField(v.NewPath)))
		}
	}
	return []byte(sb.String()), nil
}

func (f *StringLineFormatter) Decode(data []byte) ([]types.WalLogEntry, error) {
	var items []types.WalLogEntry
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) < 1 {
			return nil, fmt.Errorf("invalid WAL log format: %s", line)
		}

		typeVal, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid type in WAL log: %s", parts[0])
		}

		logType := types.LogType(typeVal)

		switch logType {
		case types.LogTypePick:
			if len(parts) != 5 {
				return nil, fmt.Errorf("invalid WAL log format for pick: %s", line)
			}
			requestID, err := strconv.ParseUint(parts[1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid request ID in WAL log: %s", parts[1])
			}
			fileID, err := unescapeField(parts[2])
			if err != nil {
				return nil, fmt.Errorf("invalid file ID in WAL log: %s", parts[2])
			}
			errorVal, err := strconv.Atoi(parts[3])
			if err != nil {
				return nil, fmt.Errorf("invalid error in WAL log: %s", parts[3])
			}
			success, err := strconv.ParseBool(parts[4])
			if err != nil {
				return nil, fmt.Errorf("invalid success in WAL log: %s", parts[4])
			}
			items = append(items, &types.WalLogPickItem{
				WalLogEntryBase: types.WalLogEntryBase{
					Type:  logType,
					Error: types.LogError(errorVal),
				},
				RequestID: requestID,
				FileID:    fileID,
				Success:   success,
			})
		case types.LogTypeRescan:
			if len(parts) != 3 {
				return nil, fmt.Errorf("invalid WAL log format for rescan: %s", line)
			}
			added, err := splitList(parts[1])
			if err != nil {
				return nil, fmt.Errorf("invalid added list in WAL log: %s", parts[1])
			}
			removed, err := splitList(parts[2])
			if err != nil {
				return nil, fmt.Errorf("invalid removed list in WAL log: %s", parts[2])
			}
			items = append(items, &types.WalLogRescanItem{
				WalLogEntryBase: types.WalLogEntryBase{
					Type: logType,
				},
				Added:   added,
				Removed: removed,
			})
		case types.LogTypeSnapshot:
			if len(parts) != 2 {
				return nil, fmt.Errorf("invalid WAL log format for snapshot: %s", line)
			}
			path, err := unescapeField(parts[1])
			if err != nil {
				return nil, fmt.Errorf("invalid path in WAL log: %s", parts[1])
			}
			items = append(items, &types.WalLogSnapshotItem{
				WalLogEntryBase: types.WalLogEntryBase{
					Type: logType,
				},
				Path: path,
			})
		case types.LogTypeRotate:
			if len(parts) != 3 {
				return nil, fmt.Errorf("invalid WAL log format for rotate: %s", line)
			}
			oldPath, err := unescapeField(parts[1])
			if err != nil {
				return nil, fmt.Errorf("invalid old path in WAL log: %s", parts[1])
			}
			newPath, err := unescapeField(parts[2])
			if err != nil {
				return nil, fmt.Errorf("invalid new path in WAL log: %s", parts[2])
			}
			items = append(items, &types.WalLogRotateItem{
				WalLogEntryBase: types.WalLogEntryBase{
					Type: logType,
				},
				OldPath: oldPath,
				NewPath: newPath,
			})
		}
	}
	return items, nil
}

// escapeField percent-escapes a path so it contains no ',' '|' or newline.
func escapeField(s string) string {
	return url.QueryEscape(s)
}

func unescapeField(s string) (string, error) {
	return url.QueryUnescape(s)
}

func joinList(ids []string) string {
	escaped := make([]string, 0, len(ids))
	for _, id := range ids {
		escaped = append(escaped, escapeField(id))
	}
	return strings.Join(escaped, "|")
}

func splitList(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var ids []string
	for _, part := range strings.Split(s, "|") {
		id, err := unescapeField(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
