package openspace

import "github.com/viam-labs/openspace-planner/geom"

// assembleTrajectory walks back from the terminal node to the start via
// predecessor references, reversing and stitching per-node traversed pose
// subsequences into a single start-to-goal pose sequence, per spec.md
// section 4.7.
func assembleTrajectory(terminal *poseNode) ([]geom.Pose, error) {
	if terminal == nil {
		return nil, ErrAssemblyInvariant
	}

	var poses []geom.Pose
	n := terminal
	for n != nil && n.predecessor != nil {
		if len(n.traversed) == 0 {
			return nil, ErrAssemblyInvariant
		}
		seg := make([]geom.Pose, len(n.traversed))
		copy(seg, n.traversed)
		reversePoses(seg)
		seg = seg[:len(seg)-1] // drop the boundary pose shared with the parent
		poses = append(poses, seg...)
		n = n.predecessor
	}
	if n == nil {
		return nil, ErrAssemblyInvariant
	}
	poses = append(poses, n.pose) // start pose

	reversePoses(poses)
	return poses, nil
}

func reversePoses(p []geom.Pose) {
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
}
