package services

import "template_directory/models"

// 打分权重固定，总分上限100
// 修改任何一个常数都会改变线上推荐的排序口径，需要评估后再动
const (
	categoryWeight   = 40.0 // 分类一致
	tagWeight        = 30.0 // 标签重合度
	collabWeight     = 20.0 // 热度接近度（近似"受众相似"）
	popularityWeight = 10.0 // 归一化热度

	// 热度饱和点：超过该值的热度不再加分，避免头部模板霸占所有推荐位
	popularitySaturation = 1000.0
)

// scoreTemplate 计算候选模板相对源模板的综合相关度分数
func scoreTemplate(candidate, source models.Template, queryTags []string) float64 {
	score := 0.0

	// 分类一致：两边都有分类且相同才得分
	if candidate.Category != "" && candidate.Category == source.Category {
		score += categoryWeight
	}

	// 标签重合度：交集大小除以两边标签数的较大者
	score += tagWeight * tagOverlap(candidate.Tags, queryTags)

	// 热度接近度：总热度（浏览+下载）越接近源模板，分数越高
	pc := float64(candidate.Popularity.Total())
	ps := float64(source.Popularity.Total())
	score += collabWeight * (1 - absFloat(pc-ps)/maxFloat(pc, ps, 1))

	// 归一化热度：饱和点以内线性加分
	score += popularityWeight * minFloat(pc/popularitySaturation, 1)

	return score
}

// tagOverlap 标签重合度，标签按集合处理，重复出现不计
func tagOverlap(candidateTags, queryTags []string) float64 {
	candSet := make(map[string]bool, len(candidateTags))
	for _, t := range candidateTags {
		if t != "" {
			candSet[t] = true
		}
	}
	querySet := make(map[string]bool, len(queryTags))
	for _, t := range queryTags {
		if t != "" {
			querySet[t] = true
		}
	}

	overlap := 0
	for t := range querySet {
		if candSet[t] {
			overlap++
		}
	}

	return float64(overlap) / maxFloat(float64(len(querySet)), float64(len(candSet)), 1)
}

func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func maxFloat(values ...float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
