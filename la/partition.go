package la

// PartitionMap splits the index range [0, MaxIndex) into ParallelDegree contiguous buckets.
type PartitionMap struct {
	MaxIndex       int // MaxIndex is partitioned into ParallelDegree partitions
	ParallelDegree int
	Partitions     [][2]int // Beginning and end index of partitions
}

func NewPartitionMap(parallelDegree, maxIndex int) (pm *PartitionMap) {
	if parallelDegree > maxIndex {
		parallelDegree = maxIndex
	}
	if parallelDegree < 1 {
		parallelDegree = 1
	}
	pm = &PartitionMap{
		MaxIndex:       maxIndex,
		ParallelDegree: parallelDegree,
		Partitions:     make([][2]int, parallelDegree),
	}
	for n := 0; n < parallelDegree; n++ {
		pm.Partitions[n] = pm.Split1D(n)
	}
	return
}

func (pm *PartitionMap) GetBucketRange(bucketNum int) (min, max int) {
	return pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
}

func (pm *PartitionMap) GetBucketDimension(bucketNum int) int {
	min, max := pm.GetBucketRange(bucketNum)
	return max - min
}

func (pm *PartitionMap) Split1D(threadNum int) (bucket [2]int) {
	// Buckets differ in size by at most one, the first ones take the remainder
	var (
		nPart            = pm.MaxIndex / pm.ParallelDegree
		remainder        = pm.MaxIndex % pm.ParallelDegree
		startAdd, endAdd int
	)
	if remainder != 0 {
		if threadNum+1 > remainder {
			startAdd = remainder
			endAdd = 0
		} else {
			startAdd = threadNum
			endAdd = 1
		}
	}
	bucket[0] = threadNum*nPart + startAdd
	bucket[1] = bucket[0] + nPart + endAdd
	return
}
