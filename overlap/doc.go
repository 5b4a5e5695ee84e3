/*Package overlap implements permutation-based significance testing of the
  spatial overlap between two genomic interval sets.  It counts the observed
  overlap between the sets, re-counts it across N independent trials in which
  one set is randomized by one of three strategies (shuffle, circle, novl),
  and reduces the trial counts into permutation mean/sd, a z-score, and a
  (k+1)/(n+1) p-value.
*/
package overlap
