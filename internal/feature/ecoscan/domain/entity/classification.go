package entity

// Classification は画像が衣類かどうかの判定結果を表します。
type Classification struct {
	IsClothing  bool    // 衣類が写っているか
	Name        string  // 衣類の種類（衣類でない場合は空）
	Probability float64 // 信頼度（0.0 ~ 1.0）
}
