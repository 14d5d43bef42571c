package metadata

// --- SQLite Keys ---
// 这些键用于metadata表的key列。
const (
	// LastSnapshotAtKey 存储最近一次排行榜快照成功完成的Unix时间戳（秒）。
	LastSnapshotAtKey = "last_snapshot_at"
)
