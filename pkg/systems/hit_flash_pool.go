package systems

import (
	"github.com/gonewx/wayfarer/pkg/components"
	"github.com/gonewx/wayfarer/pkg/ecs"
	"github.com/gonewx/wayfarer/pkg/entities"
)

// HitFlashPool 受击火花对象池
//
// 固定数量的火花实体在创建时一次性分配，命中时复用空闲槽位；
// 全部占用时复用最早激活的槽位，池的大小永远不变。
type HitFlashPool struct {
	entityManager *ecs.EntityManager
	slots         []ecs.EntityID
	acquiredAt    []uint64 // 每个槽位最近一次激活的序号
	seq           uint64
}

// NewHitFlashPool 创建指定容量的对象池
func NewHitFlashPool(em *ecs.EntityManager, size int) *HitFlashPool {
	if size < 1 {
		size = 1
	}
	p := &HitFlashPool{
		entityManager: em,
		slots:         make([]ecs.EntityID, size),
		acquiredAt:    make([]uint64, size),
	}
	for i := range p.slots {
		p.slots[i] = entities.NewHitSpark(em)
	}
	return p
}

// Size 池容量
func (p *HitFlashPool) Size() int {
	return len(p.slots)
}

// InUse 当前激活的火花数
func (p *HitFlashPool) InUse() int {
	n := 0
	for _, id := range p.slots {
		if spark, ok := ecs.GetComponent[*components.HitSparkComponent](p.entityManager, id); ok && spark.InUse {
			n++
		}
	}
	return n
}

// Acquire 在 (x, y) 激活一个火花并返回其实体
func (p *HitFlashPool) Acquire(x, y float64) ecs.EntityID {
	idx := -1
	oldest := 0
	for i, id := range p.slots {
		spark, ok := ecs.GetComponent[*components.HitSparkComponent](p.entityManager, id)
		if !ok {
			continue
		}
		if !spark.InUse {
			idx = i
			break
		}
		if p.acquiredAt[i] < p.acquiredAt[oldest] {
			oldest = i
		}
	}
	if idx < 0 {
		idx = oldest
	}

	p.seq++
	p.acquiredAt[idx] = p.seq
	id := p.slots[idx]

	if spark, ok := ecs.GetComponent[*components.HitSparkComponent](p.entityManager, id); ok {
		spark.InUse = true
		spark.Elapsed = 0
	}
	if pos, ok := ecs.GetComponent[*components.PositionComponent](p.entityManager, id); ok {
		pos.X, pos.Y = x, y
	}
	if sprite, ok := ecs.GetComponent[*components.SpriteComponent](p.entityManager, id); ok {
		sprite.Hidden = false
	}
	return id
}

// Release 将火花放回池中
func (p *HitFlashPool) Release(id ecs.EntityID) {
	if spark, ok := ecs.GetComponent[*components.HitSparkComponent](p.entityManager, id); ok {
		spark.InUse = false
		spark.Elapsed = 0
	}
	if sprite, ok := ecs.GetComponent[*components.SpriteComponent](p.entityManager, id); ok {
		sprite.Hidden = true
	}
}

// Update 推进激活火花的计时，到期后释放
func (p *HitFlashPool) Update(deltaTime float64) {
	for _, id := range p.slots {
		spark, ok := ecs.GetComponent[*components.HitSparkComponent](p.entityManager, id)
		if !ok || !spark.InUse {
			continue
		}
		spark.Elapsed += deltaTime
		if spark.Elapsed >= spark.Duration {
			p.Release(id)
		}
	}
}
