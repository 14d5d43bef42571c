package play

// 定义与共享帖子和游玩记录相关的Redis键名

const (
	// PostsIndexKey 是一个 Redis Sorted Set，作为全部共享帖子的索引。
	// Score: 帖子创建时间的Unix秒；Member: PostID。
	// “跳到下一个未玩帖子”的扫描按创建时间从旧到新进行。
	PostsIndexKey = "chase-phrase:posts"
)

// postDataKey 返回存储帖子数据JSON的键。
func postDataKey(postID string) string {
	return "chase-phrase:post:" + postID + ":data"
}

// playRecordKey 返回存储单个用户游玩记录JSON的键。
func playRecordKey(postID, userID string) string {
	return "chase-phrase:post:" + postID + ":play:" + userID
}

// postPlayersKey 返回存储某帖子全部玩家ID的Set键。
func postPlayersKey(postID string) string {
	return "chase-phrase:post:" + postID + ":players"
}
